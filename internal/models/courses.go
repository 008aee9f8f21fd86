package models

// Course — курс пользователя в vocabulary-сервисе.
type Course struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
	UserLoginID   string `json:"userLoginId,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}

// Lesson — урок внутри курса.
type Lesson struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Word — слово внутри урока.
type Word struct {
	ID            string `json:"id"`
	Word          string `json:"word"`
	Meaning       string `json:"meaning"`
	Pronunciation string `json:"pronunciation,omitempty"`
	PartOfSpeech  string `json:"partOfSpeech,omitempty"`
	AudioURL      string `json:"audioUrl,omitempty"`
	LessonID      string `json:"lessonId"`
}

// CourseDetails — курс вместе с уроками.
type CourseDetails struct {
	Course
	Lessons []Lesson `json:"lessons"`
}

// CourseList — ответ списка курсов.
type CourseList struct {
	Courses []Course `json:"courses"`
}

// CoursesTotalStats — агрегированная статистика по всем курсам пользователя.
type CoursesTotalStats struct {
	TotalCourses int `json:"totalCourses"`
	TotalLessons int `json:"totalLessons"`
	TotalWords   int `json:"totalWords"`
}

// CourseListQuery — параметры списка курсов.
type CourseListQuery struct {
	Page             int    `validate:"min=1"`
	Limit            int    `validate:"min=1,max=100"`
	OrderByField     string `validate:"oneof=createdAt name"`
	OrderByDirection string `validate:"oneof=asc desc"`
	SearchQuery      string
}

// CreateCourseRequest — тело создания курса; при обновлении поля опциональны
// (см. UpdateCourseRequest).
type CreateCourseRequest struct {
	Name          string `json:"name" validate:"required"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
}

// UpdateCourseRequest — частичное обновление курса.
type UpdateCourseRequest struct {
	Name          *string `json:"name,omitempty"`
	CoverImageURL *string `json:"coverImageUrl,omitempty"`
}

// CreateLessonRequest — создание/обновление урока.
type CreateLessonRequest struct {
	Name          string `json:"name" validate:"required"`
	CoverImageURL string `json:"coverImageUrl,omitempty"`
	MaxWords      *int   `json:"maxWords,omitempty"`
	OrderIndex    *int   `json:"orderIndex,omitempty"`
}

// ReorderLessonsRequest — перенос урока на новую позицию (drag and drop),
// targetOrderIndex считается с единицы.
type ReorderLessonsRequest struct {
	LessonID         string `json:"lessonId" validate:"required,uuid"`
	TargetOrderIndex int    `json:"targetOrderIndex" validate:"min=1"`
}

// CreateWordRequest — создание/обновление слова в уроке.
type CreateWordRequest struct {
	Word          string `json:"word" validate:"required"`
	Meaning       string `json:"meaning" validate:"required"`
	Pronunciation string `json:"pronunciation,omitempty"`
	PartOfSpeech  string `json:"partOfSpeech,omitempty"`
	AudioURL      string `json:"audioUrl,omitempty"`
}

// MoveWordRequest — перенос одного слова в другой урок.
type MoveWordRequest struct {
	TargetLessonID string `json:"targetLessonId" validate:"required,uuid"`
}

// BulkMoveWordsRequest — перенос набора слов в другой урок.
type BulkMoveWordsRequest struct {
	TargetLessonID string   `json:"targetLessonId" validate:"required,uuid"`
	WordIDs        []string `json:"wordIds" validate:"required,min=1,dive,uuid"`
}

// BulkDeleteWordsRequest — удаление набора слов из урока.
type BulkDeleteWordsRequest struct {
	WordIDs []string `json:"wordIds" validate:"required,min=1,dive,uuid"`
}

// SuccessResponse — ответы vocabulary-сервиса на мутации.
type SuccessResponse struct {
	Success bool `json:"success"`
}
