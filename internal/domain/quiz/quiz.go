package quiz

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var defaultBank []byte

var ErrInvalidBank = errors.New("invalid quiz bank")

type Question struct {
	ID            int      `yaml:"id" json:"id"`
	Question      string   `yaml:"question" json:"question"`
	Options       []string `yaml:"options" json:"options"`
	CorrectAnswer string   `yaml:"correctAnswer" json:"correctAnswer,omitempty"`
	Topic         string   `yaml:"topic" json:"topic"`
}

// Bank is an ordered, read-only set of assessment questions.
type Bank struct {
	questions []Question
}

type bankFile struct {
	Questions []Question `yaml:"questions"`
}

// DefaultBank returns the embedded assessment bank.
func DefaultBank() *Bank {
	b, err := LoadBank(bytes.NewReader(defaultBank))
	if err != nil {
		panic(fmt.Sprintf("embedded quiz bank: %v", err))
	}
	return b
}

func LoadBankFile(path string) (*Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open quiz bank: %w", err)
	}
	defer f.Close()
	return LoadBank(f)
}

func LoadBank(r io.Reader) (*Bank, error) {
	var file bankFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidBank, err)
	}
	if len(file.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions", ErrInvalidBank)
	}
	seen := map[int]bool{}
	for i, q := range file.Questions {
		switch {
		case q.ID <= 0:
			return nil, fmt.Errorf("%w: question #%d has non-positive id", ErrInvalidBank, i+1)
		case seen[q.ID]:
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidBank, q.ID)
		case strings.TrimSpace(q.Topic) == "":
			return nil, fmt.Errorf("%w: question %d has no topic", ErrInvalidBank, q.ID)
		case len(q.Options) < 2:
			return nil, fmt.Errorf("%w: question %d needs at least two options", ErrInvalidBank, q.ID)
		case !slices.Contains(q.Options, q.CorrectAnswer):
			return nil, fmt.Errorf("%w: question %d answer is not among its options", ErrInvalidBank, q.ID)
		}
		seen[q.ID] = true
	}
	return &Bank{questions: file.Questions}, nil
}

func (b *Bank) Len() int { return len(b.questions) }

// Public returns the questions with answers stripped.
func (b *Bank) Public() []Question {
	out := make([]Question, 0, len(b.questions))
	for _, q := range b.questions {
		q.Options = slices.Clone(q.Options)
		q.CorrectAnswer = ""
		out = append(out, q)
	}
	return out
}
