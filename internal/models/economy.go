package models

import "time"

// Сроки жизни кэшированного агрегата.
// Полный TTL совпадает с окном свежести: экономические индикаторы
// обновляются не чаще раза в сутки.
const (
	// FreshWindow — максимальный возраст записи в долговременном
	// хранилище, при котором она считается свежей.
	FreshWindow = 24 * time.Hour

	// CacheTTL — срок жизни свежего агрегата в быстром кэше.
	CacheTTL = 24 * time.Hour

	// DegradedTTL — укороченный срок жизни резервного снимка в кэше:
	// достаточно короткий, чтобы вскоре повторить попытку живой загрузки,
	// и достаточно длинный, чтобы не устроить повторный шторм запросов.
	DegradedTTL = 30 * time.Minute
)

// Article представляет одну новость из общего новостного источника.
type Article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
}

// Point — одна точка именованного ряда. Для экономических индикаторов
// Label содержит дату наблюдения, для акций — тикер.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Trend — именованный ряд значений одного показателя.
type Trend struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Trends содержит все шесть рядов обзора рынка. Имена JSON-полей —
// отображаемые названия, под которыми их знает дашборд.
type Trends struct {
	Stocks              Trend `json:"Stocks"`
	GDP                 Trend `json:"GDP"`
	Inflation           Trend `json:"Inflation"`
	Unemployment        Trend `json:"Unemployment"`
	TreasuryYield       Trend `json:"Treasury Yield"`
	FederalInterestRate Trend `json:"Federal Interest Rate"`
}

// AggregateResult — итог одного цикла обновления: новости плюс шесть рядов.
// После сборки не изменяется; на каждый цикл или чтение кэша создаётся
// новый экземпляр.
type AggregateResult struct {
	News   []Article `json:"news"`
	Trends Trends    `json:"trends"`
}

// FreshnessRecord — пара «момент наблюдения + агрегат», хранимая в
// долговременном хранилище. Используется только для решения о свежести.
type FreshnessRecord struct {
	ObservedAt time.Time       `json:"time"`
	Payload    AggregateResult `json:"data"`
}

// Fresh сообщает, укладывается ли запись в окно свежести относительно now.
func (r *FreshnessRecord) Fresh(now time.Time) bool {
	return now.Sub(r.ObservedAt) <= FreshWindow
}

// Outcome — результат загрузки одного источника. Err == nil означает успех;
// при ошибке координатор подставляет соответствующее поле из резервных
// данных, наружу ошибка не выходит.
type Outcome struct {
	Source string
	News   []Article
	Trend  Trend
	Err    error
}
