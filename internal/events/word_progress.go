package events

import "context"

// WordProgressKafka публикует события прогресса через общий Publisher.
type WordProgressKafka struct {
	p *Publisher
}

func NewWordProgressKafka(p *Publisher) *WordProgressKafka { return &WordProgressKafka{p: p} }

var _ WordProgressEvents = (*WordProgressKafka)(nil)

// PublishRecordAnswer — ключ партиционирования userLoginId: события одного
// пользователя попадают в одну партицию и обрабатываются по порядку.
func (e *WordProgressKafka) PublishRecordAnswer(ctx context.Context, msg RecordAnswer) error {
	return e.p.Publish(ctx, TopicWordProgressRecordAnswer, msg, msg.UserLoginID, nil)
}
