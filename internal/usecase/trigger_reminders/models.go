package trigger_reminders

// Response итог прогона напоминаний
type Response struct {
	SentCount    int // Отправлено писем
	SkippedCount int // Пропущено: уже отправлялось или ошибка отправки
}
