package interview

import (
	"sort"
	"strings"
)

// Question bank URLs by role
var roleURLs = map[string]string{
	"Backend Engineer":       "https://www.geeksforgeeks.org/backend-developer-interview-questions-and-answers/",
	"AI/ML Engineer":         "https://www.geeksforgeeks.org/machine-learning-interview-questions/",
	"MLOps Engineer":         "https://www.geeksforgeeks.org/comprehensive-mlops-interview-questions-from-basic-to-advanced/",
	"SDE":                    "https://www.geeksforgeeks.org/top-50-software-engineering-interview-questions-and-answers/",
	"Frontend Engineer":      "https://www.geeksforgeeks.org/front-end-developer-interview-questions/",
	"Fullstack Engineer":     "https://www.geeksforgeeks.org/full-stack-developer-interview-questions-and-answers/",
	"Data Analyst":           "https://www.geeksforgeeks.org/data-analyst-interview-questions-and-answers/",
	"Data Scientist":         "https://www.geeksforgeeks.org/data-science-interview-questions-and-answers/",
	"HR Interview Questions": "https://www.geeksforgeeks.org/top-10-traditional-hr-interview-questions-and-answers/",
}

// Roles returns the supported roles in alphabetical order.
func Roles() []string {
	roles := make([]string, 0, len(roleURLs))
	for role := range roleURLs {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// RoleURL returns the question bank URL of a role. Role names match
// case-insensitively and ignore surrounding whitespace.
func RoleURL(role string) (string, string, bool) {
	role = strings.TrimSpace(role)
	if u, ok := roleURLs[role]; ok {
		return role, u, true
	}
	for name, u := range roleURLs {
		if strings.EqualFold(name, role) {
			return name, u, true
		}
	}
	return "", "", false
}
