// metadata/namer.go
package metadata

import (
	"reflect"

	"github.com/iancoleman/strcase"
)

// Namer derives table and column names when none is declared.
type Namer interface {
	ClassToTable(t reflect.Type) string
	PropertyToColumn(t reflect.Type, property string) string
}

// Underscore converts Go identifiers to snake_case: UserAccount -> user_account,
// TenantID -> tenant_id.
type Underscore struct{}

var _ Namer = Underscore{}

func (Underscore) ClassToTable(t reflect.Type) string {
	return strcase.ToSnake(Indirect(t).Name())
}

func (Underscore) PropertyToColumn(_ reflect.Type, property string) string {
	return strcase.ToSnake(property)
}
