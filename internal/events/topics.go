package events

// Имена топиков. Константы — чтобы продюсер и консюмеры не разъезжались.
const (
	TopicWordProgressRecordAnswer = "word-progress_record-answer"
)
