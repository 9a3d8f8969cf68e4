// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package nlp

// Intent is a recognized user intent.
type Intent string

const (
	// IntentRecommend asks for product recommendations.
	IntentRecommend Intent = "recommend"
	// IntentAskInfo asks for product information.
	IntentAskInfo Intent = "ask_info"
	// IntentCompare asks to compare products.
	IntentCompare Intent = "compare"
	// IntentUnknown is anything the classifiers cannot place.
	IntentUnknown Intent = "unknown"
)

// Intents lists all intents in label order. The statistical model artifact
// indexes its classes against this order.
var Intents = []Intent{IntentRecommend, IntentAskInfo, IntentCompare, IntentUnknown}

// Valid reports whether the intent is one of the recognized values.
func (i Intent) Valid() bool {
	switch i {
	case IntentRecommend, IntentAskInfo, IntentCompare, IntentUnknown:
		return true
	default:
		return false
	}
}

// Actionable reports whether the intent triggers a recommendation flow
// (anything except unknown).
func (i Intent) Actionable() bool {
	return i == IntentRecommend || i == IntentAskInfo || i == IntentCompare
}

// Fixed extraction vocabularies. Order matters: extraction takes the first
// vocabulary term contained in the text, so earlier entries shadow later
// ones when both occur.
var (
	// Categories are the product category terms.
	Categories = []string{"手机", "电脑", "平板", "耳机", "相机", "智能手表", "路由器", "游戏机", "音箱", "投影仪"}

	// Brands are the brand terms.
	Brands = []string{"苹果", "华为", "小米", "索尼", "三星", "OPPO", "vivo", "联想", "戴尔", "惠普"}

	// Features are the product feature terms.
	Features = []string{"拍照", "游戏", "续航", "屏幕", "音质", "性能", "外观", "做工", "轻薄", "散热"}

	// PriceRanges are the named price bands.
	PriceRanges = []string{"1000以下", "1000-2000", "2000-3000", "3000-5000", "5000-8000", "8000以上"}
)

// Keyword sets for the rule-based intent classifier.
var (
	recommendKeywords = []string{"推荐", "买", "购买", "好用", "值得", "选择"}
	infoKeywords      = []string{"怎么样", "如何", "什么", "多少", "参数", "规格", "性能", "好吗"}
	compareKeywords   = []string{"对比", "比较", "和", "哪个好", "哪个更好", "区别", "不同", "差别"}
)
