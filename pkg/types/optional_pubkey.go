package types

import "encoding/json"

// OptionalPubkey 对应链上的 COption<Pubkey>：
//   - 0x00            → 无（None），不带后续字节
//   - 0x01 + 32 bytes → 有（Some）
//
// 与 *Pubkey 不同，"无" 本身就是线上格式的一部分，因此单独建模，零值即 None。
type OptionalPubkey struct {
	key     Pubkey
	present bool
}

// NonePubkey 返回 None
func NonePubkey() OptionalPubkey {
	return OptionalPubkey{}
}

// SomePubkey 返回携带 key 的 Some
func SomePubkey(key Pubkey) OptionalPubkey {
	return OptionalPubkey{key: key, present: true}
}

func (o OptionalPubkey) IsSome() bool {
	return o.present
}

func (o OptionalPubkey) IsNone() bool {
	return !o.present
}

// Get 返回公钥及是否存在
func (o OptionalPubkey) Get() (Pubkey, bool) {
	return o.key, o.present
}

// Discriminant 返回线上的标志字节（0 或 1）
func (o OptionalPubkey) Discriminant() uint8 {
	if o.present {
		return 1
	}
	return 0
}

func (o OptionalPubkey) String() string {
	if !o.present {
		return "None"
	}
	return o.key.String()
}

func (o OptionalPubkey) MarshalJSON() ([]byte, error) {
	if !o.present {
		return []byte("null"), nil
	}
	return json.Marshal(o.key.String())
}

func (o OptionalPubkey) MarshalYAML() (interface{}, error) {
	if !o.present {
		return nil, nil
	}
	return o.key.String(), nil
}
