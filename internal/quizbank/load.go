// Package quizbank builds question banks, either the bundled one or one read
// from a YAML or JSON file.
package quizbank

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"pbihub/domain/quiz"
	"pbihub/internal/errors"

	"gopkg.in/yaml.v3"
)

// File is the on-disk bank schema.
type File struct {
	Version   int            `json:"version" yaml:"version"`
	Questions []FileQuestion `json:"questions" yaml:"questions"`
}

type FileQuestion struct {
	Prompt      string   `json:"question" yaml:"question"`
	Options     []string `json:"options" yaml:"options"`
	Correct     int      `json:"correct" yaml:"correct"`
	Explanation string   `json:"explanation,omitempty" yaml:"explanation,omitempty"`
}

// LoadFile reads and validates a bank file. The format is picked by extension:
// .json is JSON, anything else YAML.
func LoadFile(path string) (*quiz.Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read question bank")
	}
	var file File
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		file, err = parseJSON(data)
	} else {
		file, err = parseYAML(data)
	}
	if err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return Build(file)
}

// Build validates every question of file and collects all problems into one error.
func Build(file File) (*quiz.Bank, error) {
	var problems []string
	if file.Version != 1 {
		problems = append(problems, fmt.Sprintf("version: unsupported version %d", file.Version))
	}
	questions := make([]quiz.Question, 0, len(file.Questions))
	for i, fq := range file.Questions {
		q, err := quiz.NewQuestion(fq.Prompt, fq.Options, fq.Correct, fq.Explanation)
		if err != nil {
			problems = append(problems, fmt.Sprintf("questions[%d]: %v", i, err))
			continue
		}
		questions = append(questions, q)
	}
	if len(problems) > 0 {
		return nil, errors.InvalidInput("question bank validation failed: " + strings.Join(problems, "; "))
	}
	return quiz.NewBank(questions), nil
}

func parseJSON(data []byte) (File, error) {
	var file File
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&file); err != nil {
		return File{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return File{}, fmt.Errorf("parse json: multiple documents are not supported")
	}
	return file, nil
}

func parseYAML(data []byte) (File, error) {
	var file File
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return File{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return File{}, fmt.Errorf("parse yaml: multiple documents are not supported")
	}
	return file, nil
}

// Export converts a bank back into its file form, e.g. to seed a custom bank.
func Export(bank *quiz.Bank) File {
	file := File{Version: 1}
	for _, q := range bank.Questions() {
		file.Questions = append(file.Questions, FileQuestion{
			Prompt:      q.Prompt(),
			Options:     q.Options(),
			Correct:     q.CorrectIndex(),
			Explanation: quiz.Explain(q),
		})
	}
	return file
}

// WriteYAML encodes file as YAML.
func WriteYAML(w io.Writer, file File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return errors.Wrap(err, "failed to encode question bank")
	}
	return enc.Close()
}
