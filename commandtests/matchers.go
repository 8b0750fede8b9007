package commandtests

import (
	"fmt"

	"github.com/launchdarkly/go-test-helpers/v2/jsonhelpers"
	m "github.com/launchdarkly/go-test-helpers/v2/matchers"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// The functions in this file build matchers for the shapes of data the git
// server returns, so suite definitions read declaratively.

// asValue renders any matched value as an ldvalue.Value, letting matchers
// inspect arbitrary JSON without caring about the concrete Go type.
func asValue(value interface{}) ldvalue.Value {
	if v, ok := value.(ldvalue.Value); ok {
		return v
	}
	return ldvalue.Parse(jsonhelpers.ToJSON(value))
}

// dataWithArrayProperty matches a JSON object whose named property is an
// array. A missing property counts as an empty array; a missing data object
// does not.
func dataWithArrayProperty(name string) m.Matcher {
	return m.New(
		func(value interface{}) bool {
			v := asValue(value)
			if v.Type() != ldvalue.ObjectType {
				return false
			}
			p := v.GetByKey(name)
			return p.IsNull() || p.Type() == ldvalue.ArrayType
		},
		func() string {
			return fmt.Sprintf("data object with array property %q", name)
		},
		func(value interface{}) string {
			return fmt.Sprintf("data was missing or property %q was not an array", name)
		},
	)
}

// arrayPropertyCountAtMost matches when the named array property has no more
// than limit items. A missing property counts as zero items.
func arrayPropertyCountAtMost(name string, limit int) m.Matcher {
	return m.New(
		func(value interface{}) bool {
			return asValue(value).GetByKey(name).Count() <= limit
		},
		func() string {
			return fmt.Sprintf("at most %d items in property %q", limit, name)
		},
		func(value interface{}) string {
			return fmt.Sprintf("property %q had %d items, wanted at most %d",
				name, asValue(value).GetByKey(name).Count(), limit)
		},
	)
}
