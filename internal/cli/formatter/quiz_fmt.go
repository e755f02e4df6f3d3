package formatter

import (
	"fmt"
	"strings"

	"github.com/yungbote/studyplanner-backend/internal/domain/quiz"
)

func FormatQuiz(questions []quiz.Question) string {
	var b strings.Builder
	b.WriteString(Header("Assessment quiz"))
	b.WriteString("\n")
	for _, q := range questions {
		fmt.Fprintf(&b, "\n%s %s %s\n", StyleYellow.Render(fmt.Sprintf("%d.", q.ID)), Bold(q.Question), Dim("["+q.Topic+"]"))
		for i, opt := range q.Options {
			fmt.Fprintf(&b, "   %c) %s\n", 'a'+rune(i), opt)
		}
	}
	return b.String()
}
