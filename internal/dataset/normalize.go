package dataset

import (
	"regexp"
	"strings"
)

// Abbreviations expanded word-by-word before canonical mapping.
var subjectAbbreviations = map[string]string{
	"MGMT":  "MANAGEMENT",
	"MNGMT": "MANAGEMENT",
	"COMM":  "COMMUNICATION",
	"TECH":  "TECHNOLOGY",
	"SYS":   "SYSTEMS",
	"PROG":  "PROGRAMMING",
	"COMP":  "COMPUTER",
	"INFO":  "INFORMATION",
	"ACCT":  "ACCOUNTING",
	"ECON":  "ECONOMICS",
	"BUS":   "BUSINESS",
	"ADMIN": "ADMINISTRATION",
	"ORG":   "ORGANIZATIONAL",
	"HR":    "HUMAN RESOURCE",
	"HRM":   "HUMAN RESOURCE MANAGEMENT",
	"OB":    "ORGANIZATIONAL BEHAVIOUR",
	"STATS": "STATISTICS",
	"MKTG":  "MARKETING",
	"FIN":   "FINANCE",
	"ACC":   "ACCOUNTING",
	"ADV":   "ADVANCED",
	"INTRO": "INTRODUCTION",
	"FUND":  "FUNDAMENTALS",
	"PRIN":  "PRINCIPLES",
	"INTL":  "INTERNATIONAL",
	"CORP":  "CORPORATE",
	"IND":   "INDUSTRIAL",
	"ENV":   "ENVIRONMENTAL",
	"LAB":   "LABORATORY",
}

// Known aliases collapsed to a single canonical name. Keys are uppercase
// whitespace-collapsed forms.
var subjectMappings = map[string]string{
	".NET":              "DOT NET TECHNOLOGY",
	"DOT NET":           "DOT NET TECHNOLOGY",
	".NET TECHNOLOGY":   "DOT NET TECHNOLOGY",
	".NET TECHNOLOGIES": "DOT NET TECHNOLOGY",
	"NET TECHNOLOGIES":  "DOT NET TECHNOLOGY",
	".NET LAB":          "DOT NET TECHNOLOGY",

	"DATA STRUCTURE":                "DATA STRUCTURES",
	"DATA STRUCTURES AND ALGORITHMS": "DATA STRUCTURES",
	"DS":                             "DATA STRUCTURES",

	"DATABASE":            "DATABASE MANAGEMENT SYSTEM",
	"DBMS":                "DATABASE MANAGEMENT SYSTEM",
	"DATABASE MANAGEMENT": "DATABASE MANAGEMENT SYSTEM",
	"DATABASE SYSTEMS":    "DATABASE MANAGEMENT SYSTEM",

	"OPERATING SYSTEM": "OPERATING SYSTEMS",
	"OS":               "OPERATING SYSTEMS",

	"COMPUTER NETWORK":    "COMPUTER NETWORKS",
	"COMPUTER NETWORKING": "COMPUTER NETWORKS",
	"NETWORKS":            "COMPUTER NETWORKS",

	"OOP":  "OBJECT ORIENTED PROGRAMMING",
	"OOPS": "OBJECT ORIENTED PROGRAMMING",
	"OBJECT ORIENTED PROGRAMMING CONCEPTS": "OBJECT ORIENTED PROGRAMMING",

	"AI": "ARTIFICIAL INTELLIGENCE",
	"ARTIFICIAL INTELLIGENCE AND MACHINE LEARNING": "ARTIFICIAL INTELLIGENCE",

	"ML":                  "MACHINE LEARNING",
	"MACHINE LEARNING AND AI": "MACHINE LEARNING",

	"WEB TECH":         "WEB TECHNOLOGY",
	"WEB TECHNOLOGIES": "WEB TECHNOLOGY",
	"WEB PROGRAMMING":  "WEB TECHNOLOGY",

	"SOFT SKILL":              "SOFT SKILLS",
	"SOFT SKILLS DEVELOPMENT": "SOFT SKILLS",
	"COMMUNICATION SKILLS":    "SOFT SKILLS",

	"BUSINESS COMM":           "BUSINESS COMMUNICATION",
	"BUSINESS COMMUNICATIONS": "BUSINESS COMMUNICATION",

	"FINANCIAL MANAGEMENT": "FINANCE",
	"FINANCIAL MGMT":       "FINANCE",
	"CORPORATE FINANCE":    "FINANCE",

	"MARKETING MANAGEMENT":    "MARKETING",
	"PRINCIPLES OF MARKETING": "MARKETING",

	"HUMAN RESOURCE":           "HUMAN RESOURCE MANAGEMENT",
	"HR MANAGEMENT":            "HUMAN RESOURCE MANAGEMENT",
	"HUMAN RESOURCE MANAGEMENT": "HUMAN RESOURCE MANAGEMENT",
}

var (
	innerWhitespace = regexp.MustCompile(`\s+`)
	edgeSpecials    = regexp.MustCompile(`^[.\-\s]+|[.\-\s]+$`)
	nonAlphanum     = regexp.MustCompile(`[^A-Z0-9]+`)
)

// NormalizeSubject collapses naming variants of the same subject into one
// canonical title-cased form. Empty input stays empty.
func NormalizeSubject(raw string) string {
	s := innerWhitespace.ReplaceAllString(strings.TrimSpace(raw), " ")
	if s == "" {
		return ""
	}
	s = strings.ToUpper(s)
	s = edgeSpecials.ReplaceAllString(s, "")

	if canonical, ok := subjectMappings[s]; ok {
		s = canonical
	} else {
		words := strings.Split(s, " ")
		for i, w := range words {
			if full, ok := subjectAbbreviations[w]; ok {
				words[i] = full
			}
		}
		s = strings.Join(words, " ")
		if canonical, ok := subjectMappings[s]; ok {
			s = canonical
		}
	}

	s = strings.TrimSpace(nonAlphanum.ReplaceAllString(s, " "))
	if s == "" {
		return ""
	}
	return titleCase(s)
}

func titleCase(upper string) string {
	words := strings.Fields(strings.ToLower(upper))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
