package transaction

// Group is the named group a category belongs to. Expense categories fall
// into fixed/food/misc, income categories into active/passive/other.
type Group string

const (
	GroupFixed Group = "fixed"
	GroupFood  Group = "food"
	GroupMisc  Group = "misc"

	GroupActive  Group = "active"
	GroupPassive Group = "passive"
	GroupOther   Group = "other"
)

// Category bundles a label with its group tag and the transaction type it
// applies to, so group membership is a field read rather than a search.
type Category struct {
	Name  string `json:"name"`
	Group Group  `json:"group"`
	Type  Type   `json:"type"`
}

// DefaultCategory is the fallback label for imported rows with no category.
const DefaultCategory = "Другое"

// Categories is the fixed taxonomy. The labels are what gets persisted on a
// transaction; the struct is the lookup table behind GroupOf.
var Categories = []Category{
	{Name: "Коммуналка", Group: GroupFixed, Type: TypeExpense},
	{Name: "Связь", Group: GroupFixed, Type: TypeExpense},
	{Name: "Кредиты", Group: GroupFixed, Type: TypeExpense},

	{Name: "Продукты", Group: GroupFood, Type: TypeExpense},
	{Name: "Кафе", Group: GroupFood, Type: TypeExpense},

	{Name: "Транспорт", Group: GroupMisc, Type: TypeExpense},
	{Name: "Здоровье", Group: GroupMisc, Type: TypeExpense},
	{Name: "Одежда", Group: GroupMisc, Type: TypeExpense},
	{Name: "Развлечения и хобби", Group: GroupMisc, Type: TypeExpense},
	{Name: "Подарки", Group: GroupMisc, Type: TypeExpense},
	{Name: DefaultCategory, Group: GroupMisc, Type: TypeExpense},

	{Name: "Зарплата", Group: GroupActive, Type: TypeIncome},
	{Name: "Подработка", Group: GroupActive, Type: TypeIncome},

	{Name: "Кэшбэк", Group: GroupPassive, Type: TypeIncome},
	{Name: "Проценты", Group: GroupPassive, Type: TypeIncome},
	{Name: "Аренда", Group: GroupPassive, Type: TypeIncome},

	{Name: "Подарок", Group: GroupOther, Type: TypeIncome},
}

var categoryIndex = func() map[string]Category {
	m := make(map[string]Category, len(Categories))
	for _, c := range Categories {
		m[c.Name] = c
	}

	return m
}()

// GroupOf returns the group of a category label. Unknown labels land in the
// misc group: categories are free-form tags, not a closed enum, so a record
// imported with a label outside the taxonomy still aggregates somewhere.
func GroupOf(name string) Group {
	if c, ok := categoryIndex[name]; ok {
		return c.Group
	}

	return GroupMisc
}

// CategoryNames returns the labels applicable to the given type, in taxonomy
// order.
func CategoryNames(t Type) []string {
	var names []string

	for _, c := range Categories {
		if c.Type == t {
			names = append(names, c.Name)
		}
	}

	return names
}
