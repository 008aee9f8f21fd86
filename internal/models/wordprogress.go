package models

// AnswerQuality — ординал качества ответа 0..5 (шкала SM-2).
type AnswerQuality int

const (
	QualityCompleteBlackout AnswerQuality = iota
	QualityIncorrect
	QualityIncorrectButEasy
	QualityCorrectWithDifficulty
	QualityCorrectWithHesitation
	QualityPerfect
)

// RecordAnswerRequest — тело POST /vocabulary/word-progress/record-answer.
// Quality — указатель: ноль (COMPLETE_BLACKOUT) — валидное значение,
// отсутствие поля — нет.
type RecordAnswerRequest struct {
	WordID  string         `json:"wordId" validate:"required,uuid"`
	Quality *AnswerQuality `json:"quality" validate:"required,min=0,max=5"`
}

// RecordAnswerAccepted — подтверждение приёма: событие ушло в брокер,
// обработка асинхронная.
type RecordAnswerAccepted struct {
	Accepted bool `json:"accepted"`
}

// WordProgress — прогресс изучения слова (владеет vocabulary-сервис).
type WordProgress struct {
	ID             string  `json:"id"`
	WordID         string  `json:"wordId"`
	UserLoginID    string  `json:"userLoginId"`
	EaseFactor     float64 `json:"easeFactor"`
	Interval       int     `json:"interval"`
	Repetitions    int     `json:"repetitions"`
	LastReviewedAt string  `json:"lastReviewedAt,omitempty"`
	NextReviewAt   string  `json:"nextReviewAt"`
	TotalReviews   int     `json:"totalReviews"`
	CorrectReviews int     `json:"correctReviews"`
	SuccessRate    float64 `json:"successRate"`
}

// DueWord — слово к повторению вместе с деталями.
type DueWord struct {
	WordProgress
	Word  Word `json:"word"`
	IsNew bool `json:"isNew"`
}

// DueWordsQuery — параметры выборки слов к повторению.
type DueWordsQuery struct {
	CourseID   string `validate:"omitempty,uuid"`
	LessonID   string `validate:"omitempty,uuid"`
	Limit      int    `validate:"min=1,max=100"`
	IncludeNew bool
}

// DueWordIDs — только идентификаторы (тот же порядок, что и due-words).
type DueWordIDs struct {
	WordIDs []string `json:"wordIds"`
}

// WordProgressStats — сводка прогресса пользователя.
type WordProgressStats struct {
	TotalWords         int     `json:"totalWords"`
	NewWords           int     `json:"newWords"`
	LearningWords      int     `json:"learningWords"`
	ReviewWords        int     `json:"reviewWords"`
	DueToday           int     `json:"dueToday"`
	OverallSuccessRate float64 `json:"overallSuccessRate"`
}
