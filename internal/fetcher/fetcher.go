package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"finance_dashboard/internal/config"
	"finance_dashboard/internal/logger"
	"finance_dashboard/internal/models"
	"finance_dashboard/internal/schema"
)

// Коды пяти экономических индикаторов, передаваемые источнику
// параметром запроса function.
const (
	CodeRealGDP          = "REAL_GDP"
	CodeInflation        = "INFLATION"
	CodeUnemployment     = "UNEMPLOYMENT"
	CodeTreasuryYield    = "TREASURY_YIELD"
	CodeFederalFundsRate = "FEDERAL_FUNDS_RATE"
)

// IndicatorCodes — фиксированный порядок опроса индикаторов.
var IndicatorCodes = []string{
	CodeRealGDP,
	CodeInflation,
	CodeUnemployment,
	CodeTreasuryYield,
	CodeFederalFundsRate,
}

// Имена источников в Outcome.Source для неиндикаторных загрузок.
const (
	SourceNews   = "news"
	SourceStocks = "stocks"
)

// TrendName возвращает отображаемое имя ряда для кода индикатора.
// Неизвестный код — дефект конфигурации, а не ошибка среды, и это
// единственная фатальная ситуация во всей подсистеме.
func TrendName(code string) string {
	switch code {
	case CodeRealGDP:
		return "GDP"
	case CodeInflation:
		return "Inflation"
	case CodeUnemployment:
		return "Unemployment"
	case CodeTreasuryYield:
		return "Treasury Yield"
	case CodeFederalFundsRate:
		return "Federal Interest Rate"
	default:
		panic(fmt.Sprintf("unknown indicator code: %s", code))
	}
}

// Client выполняет запросы к семи внешним источникам обзора рынка.
// Источники независимы: неудача одного не влияет на остальные.
type Client struct {
	http      *http.Client
	validator *schema.Validator

	newsURL      string
	moversURL    string
	indicatorURL string
	apiKey       string
}

// NewClient создаёт клиента источников с коротким таймаутом из конфигурации.
func NewClient(cfg *config.Config, validator *schema.Validator) *Client {
	return &Client{
		http:         &http.Client{Timeout: time.Duration(cfg.FetchTimeout) * time.Second},
		validator:    validator,
		newsURL:      cfg.NewsURL,
		moversURL:    cfg.MoversURL,
		indicatorURL: cfg.IndicatorURL,
		apiKey:       cfg.APIKey,
	}
}

// FetchNews загружает общую новостную ленту.
func (c *Client) FetchNews(ctx context.Context) models.Outcome {
	payload, err := c.getJSON(ctx, c.sourceURL(c.newsURL, nil), schema.KindNews)
	if err != nil {
		return models.Outcome{Source: SourceNews, Err: err}
	}

	items, _ := payload["articles"].([]any)
	articles := make([]models.Article, 0, len(items))
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		articles = append(articles, models.Article{
			Title:       asString(m["title"]),
			Description: asString(m["description"]),
			URL:         asString(m["url"]),
			Source:      asString(m["source"]),
			PublishedAt: asString(m["published_at"]),
		})
	}
	return models.Outcome{Source: SourceNews, News: articles}
}

// FetchMovers загружает список лидеров рынка и строит ряд «тикер — цена».
func (c *Client) FetchMovers(ctx context.Context) models.Outcome {
	payload, err := c.getJSON(ctx, c.sourceURL(c.moversURL, nil), schema.KindMovers)
	if err != nil {
		return models.Outcome{Source: SourceStocks, Err: err}
	}

	log := logger.WithComponent("fetcher").WithField("source", SourceStocks)
	gainers, _ := payload["top_gainers"].([]any)
	trend := models.Trend{Name: "Stocks", Points: make([]models.Point, 0, len(gainers))}
	for _, g := range gainers {
		m, ok := g.(map[string]any)
		if !ok {
			continue
		}
		price, err := strconv.ParseFloat(asString(m["price"]), 64)
		if err != nil {
			log.Warnf("Failed to parse price %q: %v", asString(m["price"]), err)
			continue
		}
		trend.Points = append(trend.Points, models.Point{Label: asString(m["ticker"]), Value: price})
	}
	return models.Outcome{Source: SourceStocks, Trend: trend}
}

// FetchIndicator загружает один экономический индикатор по его коду.
func (c *Client) FetchIndicator(ctx context.Context, code string) models.Outcome {
	u := c.sourceURL(c.indicatorURL, url.Values{"function": {code}})
	payload, err := c.getJSON(ctx, u, schema.KindIndicator)
	if err != nil {
		return models.Outcome{Source: code, Err: err}
	}

	log := logger.WithComponent("fetcher").WithField("source", code)
	data, _ := payload["data"].([]any)
	trend := models.Trend{Name: TrendName(code), Points: make([]models.Point, 0, len(data))}
	for _, d := range data {
		m, ok := d.(map[string]any)
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(asString(m["value"]), 64)
		if err != nil {
			log.Warnf("Failed to parse value %q: %v", asString(m["value"]), err)
			continue
		}
		trend.Points = append(trend.Points, models.Point{Label: asString(m["date"]), Value: value})
	}
	return models.Outcome{Source: code, Trend: trend}
}

// getJSON выполняет GET, декодирует тело и проверяет его по схеме kind.
// Сетевые ошибки, не-2xx статусы и несовпадение формы возвращаются
// одинаково: различать их вызывающему не нужно.
func (c *Client) getJSON(ctx context.Context, url string, kind schema.Kind) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if err := c.validator.Validate(kind, payload); err != nil {
		return nil, err
	}

	// Схема гарантирует объект на верхнем уровне.
	return payload.(map[string]any), nil
}

// sourceURL добавляет к базовому адресу ключ API и дополнительные параметры.
func (c *Client) sourceURL(base string, extra url.Values) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	if c.apiKey != "" {
		q.Set("apikey", c.apiKey)
	}
	for k, vs := range extra {
		for _, v := range vs {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}
