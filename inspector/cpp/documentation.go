package cpp

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// documentation returns the comment block directly preceding node.
// Blank lines end the block; a comment trailing another declaration on its line is not included.
func documentation(node *sitter.Node, src []byte) string {
	var comments []string
	line := node.StartPoint().Row
	for prev := node.PrevSibling(); prev != nil && prev.Type() == "comment"; prev = prev.PrevSibling() {
		if prev.EndPoint().Row+1 < line {
			break
		}
		if before := prev.PrevSibling(); before != nil && before.Type() != "comment" && before.EndPoint().Row == prev.StartPoint().Row {
			break
		}
		comments = append(comments, cleanCommentMarkers(strings.TrimSpace(prev.Content(src))))
		line = prev.StartPoint().Row
	}
	if len(comments) == 0 {
		return ""
	}
	for left, right := 0, len(comments)-1; left < right; left, right = left+1, right-1 {
		comments[left], comments[right] = comments[right], comments[left]
	}
	return strings.TrimSpace(strings.Join(comments, "\n"))
}

func cleanCommentMarkers(comment string) string {
	if strings.HasPrefix(comment, "/*") && strings.HasSuffix(comment, "*/") {
		comment = strings.TrimPrefix(comment[2:len(comment)-2], "*")
	}
	if strings.HasPrefix(comment, "//") {
		comment = strings.TrimLeft(comment, "/!")
	}
	lines := strings.Split(comment, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "*") {
			lines[i] = strings.TrimSpace(line[1:])
		} else {
			lines[i] = line
		}
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
