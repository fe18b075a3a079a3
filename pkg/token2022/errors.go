package token2022

import (
	"errors"
	"fmt"
)

var (
	ErrTruncatedInput            = errors.New("token2022: truncated input")
	ErrUnknownTag                = errors.New("token2022: unknown tag")
	ErrInvalidOptionDiscriminant = errors.New("token2022: invalid option discriminant")
	ErrInvalidEnumCode           = errors.New("token2022: invalid enum code")
	ErrInvalidTextEncoding       = errors.New("token2022: invalid text encoding")
)

// UnknownTagError 标志字节没有对应的指令变体。
type UnknownTagError struct {
	Scope string // "instruction" / "transfer fee instruction"
	Tag   uint8
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("token2022: unknown %s tag %d", e.Scope, e.Tag)
}

func (e *UnknownTagError) Unwrap() error { return ErrUnknownTag }

// InvalidEnumCodeError AuthorityType / ExtensionType 超出合法取值范围。
type InvalidEnumCodeError struct {
	Enum string
	Code uint16
}

func (e *InvalidEnumCodeError) Error() string {
	return fmt.Sprintf("token2022: invalid %s code %d", e.Enum, e.Code)
}

func (e *InvalidEnumCodeError) Unwrap() error { return ErrInvalidEnumCode }

// OptionDiscriminantError COption 的标志字节既不是 0 也不是 1，或者已无字节可读。
// 无字节可读（Missing）时同时匹配 ErrTruncatedInput。
type OptionDiscriminantError struct {
	Missing      bool
	Discriminant uint8
}

func (e *OptionDiscriminantError) Error() string {
	if e.Missing {
		return "token2022: invalid option discriminant: missing"
	}
	return fmt.Sprintf("token2022: invalid option discriminant %d", e.Discriminant)
}

func (e *OptionDiscriminantError) Is(target error) bool {
	if target == ErrInvalidOptionDiscriminant {
		return true
	}
	return e.Missing && target == ErrTruncatedInput
}

// truncated 构造统一的截断错误，附带字段名与长度信息便于排查
func truncated(field string, need, have int) error {
	return fmt.Errorf("%w: %s needs %d bytes, got %d", ErrTruncatedInput, field, need, have)
}
