package service

import (
	"testing"

	"nairatrack/models"

	"github.com/stretchr/testify/assert"
)

func TestMatchRule(t *testing.T) {
	tests := []struct {
		name        string
		matchType   string
		pattern     string
		description string
		merchant    string
		want        bool
	}{
		{"contains in description", models.RuleMatchContains, "netflix", "NETFLIX.COM subscription", "", true},
		{"contains in merchant", models.RuleMatchContains, "uber", "card payment", "Uber BV", true},
		{"contains no match", models.RuleMatchContains, "spotify", "NETFLIX.COM", "Netflix", false},
		{"starts_with match", models.RuleMatchStartsWith, "pos ", "POS purchase at Shoprite", "", true},
		{"starts_with mid-string", models.RuleMatchStartsWith, "shoprite", "POS purchase at Shoprite", "", false},
		{"exact match", models.RuleMatchExact, "salary", "SALARY", "", true},
		{"exact partial", models.RuleMatchExact, "salary", "salary payment", "", false},
		{"case insensitive", models.RuleMatchContains, "MTN", "mtn airtime topup", "", true},
		{"empty fields", models.RuleMatchContains, "anything", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := &models.CategoryRule{MatchType: tt.matchType, Pattern: tt.pattern}
			assert.Equal(t, tt.want, MatchRule(rule, tt.description, tt.merchant))
		})
	}
}
