package service

import (
	"strings"

	"nairatrack/models"

	"gorm.io/gorm"
)

// MatchRule reports whether a rule's pattern matches the transaction
// description or merchant name. Matching is case-insensitive.
func MatchRule(rule *models.CategoryRule, description, merchant string) bool {
	pattern := strings.ToLower(rule.Pattern)
	for _, field := range []string{strings.ToLower(description), strings.ToLower(merchant)} {
		if field == "" {
			continue
		}
		switch rule.MatchType {
		case models.RuleMatchExact:
			if field == pattern {
				return true
			}
		case models.RuleMatchStartsWith:
			if strings.HasPrefix(field, pattern) {
				return true
			}
		case models.RuleMatchContains:
			if strings.Contains(field, pattern) {
				return true
			}
		}
	}
	return false
}

// ApplyRules runs the user's active categorization rules against a
// transaction's description and merchant, oldest rule first. The first match
// wins; its applied_count is bumped and its category id returned. Nil means
// no rule matched.
func ApplyRules(db *gorm.DB, userID, description, merchant string) *string {
	var rules []models.CategoryRule
	if err := db.Where("user_id = ? AND is_active = ?", userID, true).
		Order("created_at ASC").
		Find(&rules).Error; err != nil {
		return nil
	}

	for i := range rules {
		if MatchRule(&rules[i], description, merchant) {
			db.Model(&models.CategoryRule{}).
				Where("id = ?", rules[i].ID).
				Update("applied_count", gorm.Expr("applied_count + 1"))
			return &rules[i].CategoryID
		}
	}
	return nil
}
