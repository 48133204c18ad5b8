package backup

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"finance_dashboard/internal/models"
)

// Встроенный последний заведомо корректный снимок обзора рынка.
// Последний рубеж деградации: отдаётся, когда живые данные собрать нельзя.
//
//go:embed backup.json
var rawSnapshot []byte

// Snapshot возвращает резервный агрегат. Каждый вызов декодирует снимок
// заново, поэтому вызывающие получают независимые копии и не могут
// испортить данные друг другу.
func Snapshot() *models.AggregateResult {
	var result models.AggregateResult
	if err := json.Unmarshal(rawSnapshot, &result); err != nil {
		// Снимок — часть бинарника; битый снимок означает битую сборку.
		panic(fmt.Sprintf("backup snapshot is corrupted: %v", err))
	}
	return &result
}
