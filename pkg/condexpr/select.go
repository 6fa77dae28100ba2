package condexpr

// Condition-list entry keys.
const (
	conditionKey = "condition"
	returnKey    = "return"
	elseKey      = "else"
)

// conditionEntry is one validated condition/return pair.
type conditionEntry struct {
	condition string
	ret       Value
}

// splitConditionList validates the evaluated conditions value and
// splits it into the ordered condition/return entries and the
// trailing default. The value must be a list whose last element is a
// map carrying an "else" key; every other element must be a map with
// a "condition" string and a "return" value.
func splitConditionList(list Value) ([]conditionEntry, Value, error) {
	if list.Kind() != KindList {
		return nil, Null(), &MalformedConditionListError{Index: -1, Err: ErrConditionsNotList}
	}
	items := list.AsList()
	if len(items) == 0 {
		return nil, Null(), &MalformedConditionListError{Index: -1, Err: ErrEmptyConditionList}
	}

	last := items[len(items)-1]
	if last.Kind() != KindMap {
		return nil, Null(), &MalformedConditionListError{Index: len(items) - 1, Err: ErrMissingDefault}
	}
	def, ok := last.MapGet(Str(elseKey))
	if !ok {
		return nil, Null(), &MalformedConditionListError{Index: len(items) - 1, Err: ErrMissingDefault}
	}

	entries := make([]conditionEntry, 0, len(items)-1)
	for i, item := range items[:len(items)-1] {
		if item.Kind() != KindMap {
			return nil, Null(), &MalformedConditionListError{Index: i, Err: ErrMissingCondition}
		}
		cond, ok := item.MapGet(Str(conditionKey))
		if !ok || cond.Kind() != KindString {
			return nil, Null(), &MalformedConditionListError{Index: i, Err: ErrMissingCondition}
		}
		ret, ok := item.MapGet(Str(returnKey))
		if !ok {
			return nil, Null(), &MalformedConditionListError{Index: i, Err: ErrMissingReturn}
		}
		entries = append(entries, conditionEntry{condition: cond.AsString(), ret: ret})
	}
	return entries, def, nil
}
