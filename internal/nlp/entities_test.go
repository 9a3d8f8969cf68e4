// CRS-System - Conversational Product Recommendation Storefront
// Copyright 2026 yourhu
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/yourhu/CRS-System

package nlp

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want EntitySet
	}{
		{
			name: "category and feature",
			text: "推荐一款拍照好的手机",
			want: EntitySet{Category: "手机", Feature: "拍照"},
		},
		{
			name: "brand and category",
			text: "华为的电脑怎么样",
			want: EntitySet{Category: "电脑", Brand: "华为"},
		},
		{
			name: "named price band",
			text: "有没有3000-5000的平板",
			want: EntitySet{Category: "平板", PriceRange: "3000-5000"},
		},
		{
			name: "numeric price in yuan",
			text: "2000元的耳机",
			want: EntitySet{Category: "耳机", Price: 2000},
		},
		{
			name: "numeric price with kuai",
			text: "1500块能买什么音箱",
			want: EntitySet{Category: "音箱", Price: 1500},
		},
		{
			name: "price ceiling phrasing",
			text: "3000以下的相机",
			want: EntitySet{Category: "相机", Price: 3000},
		},
		{
			name: "approximate price phrasing",
			text: "5000左右的游戏机",
			want: EntitySet{Category: "游戏机", Price: 5000},
		},
		{
			name: "first price pattern wins",
			text: "预算2000元，最多3000以下",
			want: EntitySet{Price: 2000},
		},
		{
			name: "first brand in vocabulary order wins",
			text: "小米和苹果哪个好",
			want: EntitySet{Brand: "苹果"},
		},
		{
			name: "no entities",
			text: "你好",
			want: EntitySet{},
		},
		{
			name: "empty text",
			text: "",
			want: EntitySet{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			if got != tt.want {
				t.Errorf("Extract(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractDeterministic(t *testing.T) {
	text := "推荐一款3000元左右拍照好的华为手机"
	first := Extract(text)
	for i := 0; i < 10; i++ {
		if got := Extract(text); got != first {
			t.Fatalf("Extract is not deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestEntitySetMerge(t *testing.T) {
	tests := []struct {
		name  string
		base  EntitySet
		newer EntitySet
		want  EntitySet
	}{
		{
			name:  "zero newer preserves everything",
			base:  EntitySet{Category: "手机", Brand: "华为", Price: 2000},
			newer: EntitySet{},
			want:  EntitySet{Category: "手机", Brand: "华为", Price: 2000},
		},
		{
			name:  "non-zero fields overwrite",
			base:  EntitySet{Category: "手机", Brand: "华为"},
			newer: EntitySet{Brand: "苹果"},
			want:  EntitySet{Category: "手机", Brand: "苹果"},
		},
		{
			name:  "fields accumulate across turns",
			base:  EntitySet{Category: "手机"},
			newer: EntitySet{Feature: "拍照", PriceRange: "2000-3000"},
			want:  EntitySet{Category: "手机", Feature: "拍照", PriceRange: "2000-3000"},
		},
		{
			name:  "merge into empty",
			base:  EntitySet{},
			newer: EntitySet{Category: "耳机", Price: 500},
			want:  EntitySet{Category: "耳机", Price: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.base.Merge(tt.newer); got != tt.want {
				t.Errorf("Merge() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestEntitySetIsZero(t *testing.T) {
	if !(EntitySet{}).IsZero() {
		t.Error("empty set should be zero")
	}
	if (EntitySet{Category: "手机"}).IsZero() {
		t.Error("set with category should not be zero")
	}
	if (EntitySet{Price: 100}).IsZero() {
		t.Error("set with price should not be zero")
	}
}
