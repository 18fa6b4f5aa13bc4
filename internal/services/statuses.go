package services

import (
	"strings"

	"profix/internal/models"
)

// Переходы статусов заявки намеренно не ограничены: и PM, и админ могут
// выставить любой из четырёх (включая completed -> pending). Проверяем
// только принадлежность множеству.
var requestStatuses = map[models.RequestStatus]bool{
	models.StatusPending:    true,
	models.StatusInProgress: true,
	models.StatusCompleted:  true,
	models.StatusCancelled:  true,
}

var requestPriorities = map[models.RequestPriority]bool{
	models.PriorityLow:    true,
	models.PriorityMedium: true,
	models.PriorityHigh:   true,
}

func IsValidStatus(s models.RequestStatus) bool {
	return requestStatuses[s]
}

func IsValidPriority(p models.RequestPriority) bool {
	return requestPriorities[p]
}

// HumanizeStatus — "in_progress" -> "In Progress" (подписи для графиков).
func HumanizeStatus(s models.RequestStatus) string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
