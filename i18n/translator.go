package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "min").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "too_small":
			return "小さすぎます"
		case "too_big":
			return "大きすぎます"
		case "invalid_email":
			return "メールアドレスが不正です"
		case "invalid_uuid":
			return "UUIDが不正です"
		case "invalid_format":
			return "形式が不正です"
		case "invalid_literal":
			return "リテラル値が一致しません"
		case "invalid_enum":
			return "許可されていない値です"
		case "unrecognized_key":
			return "未知のキーです"
		case "custom":
			return "検証に失敗しました"
		case "max_depth_exceeded":
			return "ネストが深すぎます"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "too_small":
			return "too small"
		case "too_big":
			return "too big"
		case "invalid_email":
			return "invalid email address"
		case "invalid_uuid":
			return "invalid UUID"
		case "invalid_format":
			return "invalid format"
		case "invalid_literal":
			return "literal value mismatch"
		case "invalid_enum":
			return "value not allowed"
		case "unrecognized_key":
			return "unrecognized key"
		case "custom":
			return "validation failed"
		case "max_depth_exceeded":
			return "maximum nesting depth exceeded"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
