// Package content validates and decodes the embedded lesson content document.
package content

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"lingo-days/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://lesson-content.json"

const lessonContentSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "vocabulary", "quiz", "flashcards"],
  "additionalProperties": false,
  "properties": {
    "version": {"const": 1},
    "vocabulary": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["word", "translation"],
        "additionalProperties": false,
        "properties": {
          "word": {"type": "string", "minLength": 1},
          "translation": {"type": "string", "minLength": 1},
          "pronunciation": {"type": "string"},
          "example": {"type": "string"},
          "audio_url": {"type": "string"}
        }
      }
    },
    "quiz": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "type", "question", "answer"],
        "additionalProperties": false,
        "properties": {
          "id": {"type": "string", "minLength": 1},
          "type": {"enum": ["multiple_choice", "fill_blank", "true_false"]},
          "question": {"type": "string", "minLength": 1},
          "options": {"type": "array", "items": {"type": "string"}},
          "answer": {"type": "string", "minLength": 1},
          "explanation": {"type": "string"}
        },
        "if": {"properties": {"type": {"const": "multiple_choice"}}},
        "then": {"required": ["options"], "properties": {"options": {"minItems": 2}}}
      }
    },
    "flashcards": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["front", "back"],
        "additionalProperties": false,
        "properties": {
          "front": {"type": "string", "minLength": 1},
          "back": {"type": "string", "minLength": 1},
          "hint": {"type": "string"}
        }
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(lessonContentSchema))
		if err != nil {
			compileErr = fmt.Errorf("parse lesson content schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add lesson content schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Validate checks raw lesson content against the content schema.
func Validate(raw []byte) error {
	sch, err := schema()
	if err != nil {
		return domain.NewInternalError("lesson content schema unavailable", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return domain.NewInvalidContentError(fmt.Errorf("invalid JSON: %w", err))
	}
	if err := sch.Validate(inst); err != nil {
		return domain.NewInvalidContentError(err)
	}
	return nil
}

// Parse validates raw and decodes it into a LessonContent.
func Parse(raw []byte) (domain.LessonContent, error) {
	if err := Validate(raw); err != nil {
		return domain.LessonContent{}, err
	}
	var c domain.LessonContent
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.LessonContent{}, domain.NewInvalidContentError(err)
	}
	return c, nil
}

// Encode validates c and returns its stored form.
func Encode(c domain.LessonContent) ([]byte, error) {
	if c.Vocabulary == nil {
		c.Vocabulary = []domain.VocabularyItem{}
	}
	if c.Quiz == nil {
		c.Quiz = []domain.QuizQuestion{}
	}
	if c.Flashcards == nil {
		c.Flashcards = []domain.Flashcard{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal lesson content: %w", err)
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}
	return raw, nil
}
