package ir

import (
	"fmt"

	"github.com/Giuseppe-Bianc/jsavrs-sub005/internal/util"
)

// Operand is either a reference to an SSA value or a literal constant.
type Operand struct {
	Value         ValueID
	LiteralInt    *int64
	LiteralFloat  *float64
	LiteralString *string
}

func Val(id ValueID) Operand {
	return Operand{Value: id}
}

func ConstInt(value int64) Operand {
	return Operand{LiteralInt: util.Ptr(value)}
}

func ConstFloat(value float64) Operand {
	return Operand{LiteralFloat: util.Ptr(value)}
}

func ConstString(value string) Operand {
	return Operand{LiteralString: util.Ptr(value)}
}

func (o Operand) IsValue() bool {
	return o.Value != NoValue
}

func (o Operand) String() string {
	if o.Value != NoValue {
		return fmt.Sprintf("%%%d", o.Value)
	} else if o.LiteralInt != nil {
		return fmt.Sprintf("%d", *o.LiteralInt)
	} else if o.LiteralFloat != nil {
		return fmt.Sprintf("%g", *o.LiteralFloat)
	} else if o.LiteralString != nil {
		return fmt.Sprintf("\"%s\"", util.EscapeString(*o.LiteralString))
	}
	panic(fmt.Sprintf("invalid operand value: %#v", o))
}
