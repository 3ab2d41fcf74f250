package models

import "time"

// LessonResult is a finished lesson attempt.
type LessonResult struct {
	ID          string
	Username    string
	Language    string
	Lesson      string
	Score       int
	Total       int
	CompletedAt time.Time
	Answers     []AnswerRecord
}

// AnswerRecord is the outcome of one question within a LessonResult.
// Channel is "text" or "voice".
type AnswerRecord struct {
	Position int
	Prompt   string
	Expected string
	Given    string
	Correct  bool
	Channel  string
}
