package form

// Category is the top-level business classification. The two branches are
// mutually exclusive and drive which fields of the Details step are active.
type Category string

const (
	CategoryDirectRetail         Category = "direct-retail"
	CategoryWholesaleDistributor Category = "wholesale-distributor"
)

// Option is a selectable value with its display label.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

var Categories = []Option{
	{ID: string(CategoryDirectRetail), Label: "Direct / Retail"},
	{ID: string(CategoryWholesaleDistributor), Label: "Wholesale / Distributor"},
}

var RetailSubcategories = []Option{
	{ID: "bar-nightclub", Label: "Bar / Nightclub"},
	{ID: "catering", Label: "Catering"},
	{ID: "cruise-line", Label: "Cruise Line"},
	{ID: "event-coordinator", Label: "Event Coordinator"},
	{ID: "golf-course", Label: "Golf Course"},
	{ID: "grocery-store", Label: "Grocery Store"},
	{ID: "liquor-store", Label: "Liquor Store"},
	{ID: "restaurant", Label: "Restaurant"},
	{ID: "stadium", Label: "Stadium"},
	{ID: "other", Label: "Other"},
}

var DistributorSubcategories = []Option{
	{ID: "beverage", Label: "Beverage Distributor"},
	{ID: "foodservice", Label: "Foodservice Distributor"},
	{ID: "other", Label: "Other"},
}

var OutletTypeOptions = []Option{
	{ID: "bar-nightclub", Label: "Bar / Nightclub"},
	{ID: "restaurant", Label: "Restaurant"},
	{ID: "liquor-store", Label: "Liquor Store"},
	{ID: "grocery-store", Label: "Grocery Store"},
	{ID: "events", Label: "Events"},
	{ID: "golf-courses", Label: "Golf Courses"},
	{ID: "sporting-events", Label: "Sporting Events"},
	{ID: "stadiums", Label: "Stadiums"},
	{ID: "cruise-lines", Label: "Cruise Lines"},
	{ID: "catering", Label: "Catering"},
	{ID: "other", Label: "Other"},
}

var AccountReps = []Option{
	{ID: "alana-wigdahl", Label: "Alana Wigdahl"},
	{ID: "matt-vandelec", Label: "Matt Vandelec"},
	{ID: "james-ganino", Label: "James Ganino"},
	{ID: "derek-kuehl", Label: "Derek Kuehl"},
	{ID: "no-rep", Label: "I don't have a rep"},
}

// FieldSet describes which Details-step inputs are active for a category.
type FieldSet struct {
	Subcategories       []Option
	OutletTypesActive   bool
	JustificationActive bool
}

// FieldSetFor resolves the active field set for a category. Unknown
// categories resolve to an empty field set with no active conditionals.
func FieldSetFor(category Category) FieldSet {
	switch category {
	case CategoryDirectRetail:
		return FieldSet{Subcategories: RetailSubcategories, JustificationActive: true}
	case CategoryWholesaleDistributor:
		return FieldSet{Subcategories: DistributorSubcategories, OutletTypesActive: true}
	default:
		return FieldSet{}
	}
}

// LabelFor returns the label for a value in an option list, falling back to
// the raw value when it is not a known option.
func LabelFor(value string, options []Option) string {
	for _, opt := range options {
		if opt.ID == value {
			return opt.Label
		}
	}
	return value
}

// CategoryLabel returns the display label for the snapshot's category.
func (s *Snapshot) CategoryLabel() string {
	return LabelFor(string(s.BusinessCategory), Categories)
}

// SubcategoryLabel resolves the subcategory for display. When "other" was
// chosen, the free-text override substitutes for the subcategory label
// everywhere downstream.
func (s *Snapshot) SubcategoryLabel() string {
	if s.Subcategory == "other" && s.OtherSubcategory != "" {
		return s.OtherSubcategory
	}
	return LabelFor(s.Subcategory, FieldSetFor(s.BusinessCategory).Subcategories)
}
