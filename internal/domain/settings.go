package domain

// Category is a per-trip category definition. Value is the stored slug,
// Label the display text. Color is set for schedule categories only.
type Category struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// Settings holds the per-trip category definitions. Trips created before
// settings existed carry a nil *Settings and fall back to the defaults.
type Settings struct {
	ScheduleCategories []Category `json:"scheduleCategories"`
	ExpenseCategories  []Category `json:"expenseCategories"`
}

// DefaultScheduleCategories returns the built-in schedule category list used
// when a trip has no settings of its own.
func DefaultScheduleCategories() []Category {
	return []Category{
		{Value: "unset", Label: "未設定", Color: "#bdc3c7"},
		{Value: "meal", Label: "食事", Color: "#e74c3c"},
		{Value: "transport", Label: "移動", Color: "#3498db"},
		{Value: "accommodation", Label: "宿泊", Color: "#9b59b6"},
		{Value: "activity", Label: "体験/アクティビティ", Color: "#f39c12"},
	}
}

// DefaultExpenseCategories returns the built-in expense category list.
func DefaultExpenseCategories() []Category {
	return []Category{
		{Value: "food", Label: "食事"},
		{Value: "transport", Label: "移動"},
		{Value: "accommodation", Label: "宿泊"},
		{Value: "activity", Label: "体験"},
		{Value: "other", Label: "その他"},
	}
}

// DefaultSettings returns a Settings populated with both default lists.
// Used to initialize a trip's settings on first category edit.
func DefaultSettings() *Settings {
	return &Settings{
		ScheduleCategories: DefaultScheduleCategories(),
		ExpenseCategories:  DefaultExpenseCategories(),
	}
}

// ExpenseCategoryLabel maps an expense category code to its display label.
// Unrecognized codes fall back to the "other" label.
func ExpenseCategoryLabel(code string) string {
	switch code {
	case "food":
		return "食事"
	case "transport":
		return "移動"
	case "accommodation":
		return "宿泊"
	case "activity":
		return "体験"
	default:
		return "その他"
	}
}
