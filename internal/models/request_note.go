package models

import "time"

// RequestNote — одна заметка PM по заявке. Заметки только добавляются,
// редактирования/удаления нет.
type RequestNote struct {
	ID         int64     `json:"id"`
	RequestID  int       `json:"request_id"`
	AuthorPMID int       `json:"author_pm_id"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}
