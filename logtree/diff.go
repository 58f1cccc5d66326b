package logtree

import (
	"strconv"
	"strings"

	"github.com/gerunddev/jjdag/jj"
)

// ParseGitDiff splits `jj diff --git` output into file nodes holding hunk
// nodes holding line nodes.
func ParseGitDiff(diff string) ([]*Node, error) {
	var (
		files   []*Node
		file    *Node
		hunk    *Node
		newLine int
	)

	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git "):
			path, err := gitDiffPath(line)
			if err != nil {
				return nil, err
			}
			file = &Node{Kind: KindFileDiff, Path: path, Status: FileModified}
			files = append(files, file)
			hunk = nil

		case file == nil:
			if strings.TrimSpace(line) != "" {
				return nil, &jj.ParseError{Line: line, Reason: "diff output before first file header"}
			}

		case hunk == nil && !strings.HasPrefix(line, "@@"):
			switch {
			case strings.HasPrefix(line, "new file mode"):
				file.Status = FileAdded
			case strings.HasPrefix(line, "deleted file mode"):
				file.Status = FileDeleted
			case strings.HasPrefix(line, "rename to "):
				file.Status = FileRenamed
				file.Path = strings.TrimPrefix(line, "rename to ")
			}

		case strings.HasPrefix(line, "@@"):
			start, err := hunkNewStart(line)
			if err != nil {
				return nil, err
			}
			newLine = start
			hunk = &Node{Kind: KindHunk, Text: line, Expanded: true}
			file.children = append(file.children, hunk)

		default:
			n := &Node{Kind: KindLine, Text: line}
			switch {
			case strings.HasPrefix(line, "\\"):
			case strings.HasPrefix(line, "-"):
				n.lineNumber = newLine
			default:
				n.lineNumber = newLine
				newLine++
			}
			hunk.children = append(hunk.children, n)
		}
	}
	return files, nil
}

// gitDiffPath returns the destination path of a "diff --git a/x b/y" line.
func gitDiffPath(header string) (string, error) {
	rest := strings.TrimPrefix(header, "diff --git ")
	i := strings.LastIndex(rest, " b/")
	if !strings.HasPrefix(rest, "a/") || i < 0 {
		return "", &jj.ParseError{Line: header, Reason: "malformed diff header"}
	}
	return rest[i+len(" b/"):], nil
}

// hunkNewStart reads c from "@@ -a,b +c,d @@ ...".
func hunkNewStart(header string) (int, error) {
	fields := strings.Fields(header)
	if len(fields) < 3 || !strings.HasPrefix(fields[2], "+") {
		return 0, &jj.ParseError{Line: header, Reason: "malformed hunk header"}
	}
	rng := strings.TrimPrefix(fields[2], "+")
	if i := strings.IndexByte(rng, ','); i >= 0 {
		rng = rng[:i]
	}
	start, err := strconv.Atoi(rng)
	if err != nil {
		return 0, &jj.ParseError{Line: header, Reason: "malformed hunk header"}
	}
	// an empty new side ("+0,0") still anchors removed lines at line 1
	if start == 0 {
		start = 1
	}
	return start, nil
}
