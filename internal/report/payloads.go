package report

import (
	"strings"

	"github.com/PentesterFlow/accessauditor/internal/findings"
	"github.com/PentesterFlow/accessauditor/internal/recon"
)

// categoryHeadings are the parameter listing headings, in listing order.
var categoryHeadings = []struct {
	category recon.Category
	heading  string
}{
	{recon.UserRelated, "[USER RELATED PARAMETERS]"},
	{recon.ResourceRelated, "[RESOURCE RELATED PARAMETERS]"},
	{recon.BusinessLogic, "[BUSINESS LOGIC PARAMETERS]"},
	{recon.AccessControl, "[ACCESS CONTROL PARAMETERS]"},
	{recon.Sensitive, "[SENSITIVE PARAMETERS]"},
}

// payloadLine returns the suggestion printed under a parameter.
func payloadLine(cat recon.Category, param string) string {
	switch cat {
	case recon.UserRelated:
		return "Test payloads: 1, 0, -1, 999, admin, ../"
	case recon.ResourceRelated:
		return "Test payloads: 1, 2, 100, test, null"
	case recon.BusinessLogic:
		lower := strings.ToLower(param)
		switch {
		case strings.Contains(lower, "amount"), strings.Contains(lower, "price"):
			return "Test payloads: 0, -1, 999999, 0.01, 1000000"
		case strings.Contains(lower, "quantity"):
			return "Test payloads: 0, -1, 999999, 1e9"
		case strings.Contains(lower, "discount"):
			return "Test payloads: 100, 101, -10, 999"
		default:
			return "Test payloads: test, 1, 0, true, false"
		}
	case recon.AccessControl:
		return "Test payloads: admin, administrator, superuser, root, 1, true"
	case recon.Sensitive:
		return "CAUTION: Handle with care! Test with dummy values only."
	default:
		return ""
	}
}

var testCases = map[string][]string{
	findings.TypeIDOR: {
		"1. Test with different numeric IDs (1, 2, 100, 999)",
		"2. Test with special IDs (admin, root, test)",
		"3. Test with negative IDs (-1, -100)",
		"4. Test with very large IDs (999999)",
		"5. Check if you can access other users' resources",
	},
	findings.TypeBusinessLogic: {
		"1. Test price/amount parameters with 0 or negative values",
		"2. Test quantity parameters with extremely high values",
		"3. Test discount parameters with values > 100",
		"4. Test status parameters with unauthorized states",
		"5. Test for race conditions in multi-step processes",
	},
	findings.TypeAdminPanels: {
		"1. Try to access without authentication",
		"2. Try common default credentials (admin/admin)",
		"3. Check for directory listing",
		"4. Look for information disclosure",
		"5. Test for brute force protection",
	},
	findings.TypeSensitive: {
		"1. Test with dummy values only",
		"2. Check if values are properly encrypted",
		"3. Test for information disclosure in errors",
		"4. Check if sensitive data is logged",
		"5. Verify proper access controls",
	},
}

const genericTestCase = "  Test with various input values and boundary conditions"

// recommendedTests returns the indented test list for a finding type,
// without a trailing newline.
func recommendedTests(findingType string) string {
	cases, ok := testCases[findingType]
	if !ok {
		return genericTestCase
	}
	lines := make([]string, len(cases))
	for i, c := range cases {
		lines[i] = "  " + c
	}
	return strings.Join(lines, "\n")
}

const cheatSheet = `[IDOR TEST PAYLOADS]
- Numeric IDs: 1, 0, -1, 999, 1000, 9999
- Special IDs: admin, root, superuser, test
- Path traversal: ../, ../../etc/passwd, ..%2f..%2fetc%2fpasswd

[BUSINESS LOGIC PAYLOADS]
- Price manipulation: 0, -0.01, 999999, 0.001
- Quantity manipulation: 0, -1, 999999, 1e9
- Discount manipulation: 100, 101, -10, 999
- Status manipulation: approved, completed, paid, admin

[ACCESS CONTROL PAYLOADS]
- Role escalation: admin, administrator, superuser, root, 1, true
- Permission bypass: *, all, write, delete, super
- Boolean values: true, false, 1, 0, yes, no

[GENERAL TEST PAYLOADS]
- Empty values: '', null, undefined
- Special chars: ', ", <, >, &, ;, --
- SQL injection: ' OR '1'='1, ' OR 1=1--
- XSS test: <script>alert(1)</script>, <img src=x onerror=alert(1)>
`

const notes = `1. This is a reconnaissance report only
2. All findings need manual verification
3. Only test on systems you own or have permission to test
4. Report any vulnerabilities responsibly
`
