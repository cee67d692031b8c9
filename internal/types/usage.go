package types

// TokenUsage is one aggregate of token counts plus estimated cost.
type TokenUsage struct {
	InputTokens         int64   `json:"input_tokens"`
	OutputTokens        int64   `json:"output_tokens"`
	CacheCreationTokens int64   `json:"cache_creation_tokens"`
	CacheReadTokens     int64   `json:"cache_read_tokens"`
	TotalTokens         int64   `json:"total_tokens"`
	CostUSD             float64 `json:"cost_usd"`
}

// UsageSummary holds the three fixed aggregation windows the store reports.
type UsageSummary struct {
	Today     TokenUsage `json:"today"`
	ThisMonth TokenUsage `json:"this_month"`
	Total     TokenUsage `json:"total"`
}

// DailyUsage is one day of the usage-detail breakdown. Date is YYYY-MM-DD.
type DailyUsage struct {
	Date                string   `json:"date"`
	Models              []string `json:"models"`
	InputTokens         int64    `json:"input_tokens"`
	OutputTokens        int64    `json:"output_tokens"`
	CacheCreationTokens int64    `json:"cache_creation_tokens"`
	CacheReadTokens     int64    `json:"cache_read_tokens"`
	TotalTokens         int64    `json:"total_tokens"`
	CostUSD             float64  `json:"cost_usd"`
}

type UsageDetail struct {
	DailyUsage []DailyUsage          `json:"daily_usage"`
	ByModel    map[string]TokenUsage `json:"by_model"`
}
