// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package recommend

import (
	"fmt"

	"github.com/yourhu/CRS-System/internal/nlp"
)

// Fixed user-facing messages. Template selection is deterministic by
// entity presence; there is no random phrasing.
const (
	msgNoMatches        = "抱歉，没有找到符合条件的商品，请尝试其他条件。"
	msgRecommendFailed  = "推荐系统暂时出现问题，请稍后再试。"
	msgUnsupported      = "无法理解您的需求，请尝试询问商品推荐或信息。"
	msgInfoNotFoundAny  = "抱歉，没有找到相关产品信息。"
	msgInfoFailed       = "查询系统暂时出现问题，请稍后再试。"
	msgCompareNotFound  = "抱歉，没有找到可比较的商品。"
	msgCompareFailed    = "比较系统暂时出现问题，请稍后再试。"
	msgRecommendDefault = "根据您的需求，为您推荐以下商品："
	msgInfoDefault      = "以下是您查询的产品信息："
	msgCompareDefault   = "以下是相关产品的比较："
)

// recommendationMessage phrases the recommendation reply around the most
// specific constraint given: feature, then brand, then category.
func recommendationMessage(entities nlp.EntitySet) string {
	switch {
	case entities.Feature != "":
		return fmt.Sprintf("根据您对%s的需求，为您推荐以下商品：", entities.Feature)
	case entities.Brand != "":
		return fmt.Sprintf("为您推荐以下%s品牌的商品：", entities.Brand)
	case entities.Category != "":
		return fmt.Sprintf("为您推荐以下%s商品：", entities.Category)
	default:
		return msgRecommendDefault
	}
}

// infoNotFoundMessage degrades by which of category and brand were given.
func infoNotFoundMessage(entities nlp.EntitySet) string {
	switch {
	case entities.Category != "" && entities.Brand != "":
		return fmt.Sprintf("抱歉，暂时没有找到%s的%s产品信息。", entities.Brand, entities.Category)
	case entities.Category != "":
		return fmt.Sprintf("抱歉，暂时没有找到%s产品信息。", entities.Category)
	case entities.Brand != "":
		return fmt.Sprintf("抱歉，暂时没有找到%s的产品信息。", entities.Brand)
	default:
		return msgInfoNotFoundAny
	}
}

// infoFoundMessage phrases the information reply by the given constraints.
func infoFoundMessage(entities nlp.EntitySet) string {
	switch {
	case entities.Feature != "" && entities.Category != "":
		return fmt.Sprintf("以下是%s的%s相关信息：", entities.Category, entities.Feature)
	case entities.Brand != "" && entities.Category != "":
		return fmt.Sprintf("以下是%s的%s相关信息：", entities.Brand, entities.Category)
	case entities.Category != "":
		return fmt.Sprintf("以下是%s的相关信息：", entities.Category)
	default:
		return msgInfoDefault
	}
}

// compareMessage phrases the comparison reply by the given constraints.
func compareMessage(entities nlp.EntitySet) string {
	switch {
	case entities.Feature != "" && entities.Category != "":
		return fmt.Sprintf("以下是%s中%s表现的比较：", entities.Category, entities.Feature)
	case entities.Brand != "" && entities.Category != "":
		return fmt.Sprintf("以下是%s与其他品牌%s的比较：", entities.Brand, entities.Category)
	case entities.Category != "":
		return fmt.Sprintf("以下是%s的品牌比较：", entities.Category)
	default:
		return msgCompareDefault
	}
}
