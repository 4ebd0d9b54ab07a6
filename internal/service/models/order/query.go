package order

// QueryOrdersModel represents filter parameters for querying orders.
// ActiveOnly excludes terminal statuses; it cannot be combined with an
// explicit Statuses filter.
type QueryOrdersModel struct {
	Ids           []int64  `json:"ids,omitempty"`
	RestaurantIds []int64  `json:"restaurantIds,omitempty"`
	TableIds      []int64  `json:"tableIds,omitempty"`
	Statuses      []Status `json:"statuses,omitempty"`
	ActiveOnly    bool     `json:"activeOnly,omitempty"`
	Limit         int      `json:"limit,omitempty"`
	Offset        int      `json:"offset,omitempty"`
}
