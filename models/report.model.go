package models

// SumResult is the outcome of summing a field over matching records.
type SumResult struct {
	Total float64
	Count int64
}

// GroupCount is the number of records sharing one value of the grouped field.
type GroupCount struct {
	Key   string
	Count int64
}

type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	Total        int64         `json:"total"`
}

type SalesTotal struct {
	TotalAmount    float64 `json:"totalAmount"`
	TotalSoldItems int64   `json:"totalSoldItems"`
}

type Statistics struct {
	TotalSales       SalesTotal `json:"totalSales"`
	TotalUnsoldItems int64      `json:"totalUnsoldItems"`
}

// PriceBucketCount is one bar of the price histogram, e.g. {"range": "101-200", "count": 4}.
type PriceBucketCount struct {
	Range string `json:"range"`
	Count int64  `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// Combined merges every monthly report into one payload.
type Combined struct {
	Transactions TransactionPage    `json:"transactions"`
	Statistics   Statistics         `json:"statistics"`
	BarChart     []PriceBucketCount `json:"barChart"`
	PieChart     []CategoryCount    `json:"pieChart"`
}
