// events — публикация доменных событий шлюза в Kafka.
//
// Контракт "accept-and-forward": хендлер отвечает клиенту успехом сразу
// после подтверждённой передачи сообщения брокеру; ошибка публикации
// обязана всплыть как серверная ошибка, иначе контракт приёма нарушен.
package events

import "context"

// RecordAnswer — полезная нагрузка топика word-progress_record-answer.
// Поля зеркалят JSON-контракт консюмера, менять имена нельзя.
type RecordAnswer struct {
	UserLoginID string `json:"userLoginId"`
	WordID      string `json:"wordId"`
	Quality     int    `json:"quality"`
}

// WordProgressEvents — порт публикации событий прогресса для хендлеров.
type WordProgressEvents interface {
	PublishRecordAnswer(ctx context.Context, msg RecordAnswer) error
}
