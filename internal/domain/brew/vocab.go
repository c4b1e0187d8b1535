package brew

import "strings"

// Method is the brewing method.
type Method string

const (
	MethodDrip        Method = "drip"
	MethodFrenchPress Method = "french-press"
	MethodAeroPress   Method = "aeropress"
	MethodEspresso    Method = "espresso"
	MethodColdBrew    Method = "cold-brew"
	MethodOther       Method = "other"
)

// Methods lists the accepted methods in display order.
var Methods = []Method{MethodDrip, MethodFrenchPress, MethodAeroPress, MethodEspresso, MethodColdBrew, MethodOther}

// Equipment is the brewer used.
type Equipment string

const (
	EquipmentPourOverDripper Equipment = "pour-over-dripper"
	EquipmentAeroPress       Equipment = "aeropress"
	EquipmentOther           Equipment = "other"
)

// EquipmentKinds lists the accepted equipment in display order.
var EquipmentKinds = []Equipment{EquipmentPourOverDripper, EquipmentAeroPress, EquipmentOther}

// Labels written by the first version of the app.
var legacyMethods = map[string]Method{
	"드립":     MethodDrip,
	"프렌치프레스": MethodFrenchPress,
	"에어로프레스": MethodAeroPress,
	"에스프레소":  MethodEspresso,
	"콜드브루":   MethodColdBrew,
	"기타":     MethodOther,
}

var legacyEquipment = map[string]Equipment{
	"하리오 V60": EquipmentPourOverDripper,
	"에어로프레스":  EquipmentAeroPress,
	"기타":      EquipmentOther,
}

// Valid reports whether m is in the vocabulary.
func (m Method) Valid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// Valid reports whether e is in the vocabulary.
func (e Equipment) Valid() bool {
	for _, known := range EquipmentKinds {
		if e == known {
			return true
		}
	}
	return false
}

// NormalizeMethod maps a stored label onto the vocabulary. Unknown labels
// are returned as-is.
func NormalizeMethod(raw string) Method {
	raw = strings.TrimSpace(raw)
	if m, ok := legacyMethods[raw]; ok {
		return m
	}
	return Method(strings.ToLower(raw))
}

// NormalizeEquipment maps a stored label onto the vocabulary. Unknown labels
// are returned as-is.
func NormalizeEquipment(raw string) Equipment {
	raw = strings.TrimSpace(raw)
	if e, ok := legacyEquipment[raw]; ok {
		return e
	}
	return Equipment(strings.ToLower(raw))
}
