package fixture

// category is one family of related file names and the extensions they
// usually carry.
type category struct {
	stems      []string
	extensions []string
}

var categories = map[string]category{
	"reports": {
		stems:      []string{"report", "quarterly_report", "annual_report", "financial_report", "sales_report", "monthly_report", "weekly_report", "status_report", "progress_report", "summary_report"},
		extensions: []string{"pdf", "docx", "xlsx"},
	},
	"invoices": {
		stems:      []string{"invoice", "receipt", "bill", "statement", "payment", "transaction"},
		extensions: []string{"pdf", "csv"},
	},
	"contracts": {
		stems:      []string{"contract", "agreement", "nda", "terms", "proposal", "quote"},
		extensions: []string{"pdf", "docx"},
	},
	"presentations": {
		stems:      []string{"presentation", "slides", "deck", "pitch", "demo"},
		extensions: []string{"pptx", "key", "pdf"},
	},
	"meeting_notes": {
		stems:      []string{"meeting_notes", "notes", "minutes", "agenda", "action_items"},
		extensions: []string{"txt", "md", "docx"},
	},
	"resumes": {
		stems:      []string{"resume", "cv", "curriculum_vitae", "cover_letter", "application"},
		extensions: []string{"pdf", "docx"},
	},
	"photos": {
		stems:      []string{"photo", "image", "picture", "pic", "img", "snapshot", "shot"},
		extensions: []string{"jpg", "png", "heic"},
	},
	"videos": {
		stems:      []string{"video", "clip", "footage", "movie", "film", "recording"},
		extensions: []string{"mp4", "mov", "mkv"},
	},
	"music": {
		stems:      []string{"song", "track", "audio", "music", "recording", "mix", "remix"},
		extensions: []string{"mp3", "flac", "wav"},
	},
	"screenshots": {
		stems:      []string{"screenshot", "screen_capture", "screengrab", "capture"},
		extensions: []string{"png"},
	},
	"code": {
		stems:      []string{"main", "index", "app", "server", "client", "utils", "helpers", "config"},
		extensions: []string{"go", "js", "py", "json"},
	},
	"tests": {
		stems:      []string{"test", "spec", "unit_test", "integration_test", "e2e_test"},
		extensions: []string{"go", "js", "py"},
	},
	"docs": {
		stems:      []string{"readme", "documentation", "guide", "tutorial", "manual", "changelog"},
		extensions: []string{"md", "txt", "pdf"},
	},
	"data": {
		stems:      []string{"data", "dataset", "backup", "export", "dump", "archive"},
		extensions: []string{"csv", "json", "zip", "sql"},
	},
	"designs": {
		stems:      []string{"design", "mockup", "wireframe", "prototype", "sketch", "layout"},
		extensions: []string{"fig", "psd", "png"},
	},
	"drafts": {
		stems:      []string{"draft", "wip", "work_in_progress", "temp", "temporary"},
		extensions: []string{"docx", "txt"},
	},
	"taxes": {
		stems:      []string{"tax", "tax_return", "w2", "1099", "deduction", "expense"},
		extensions: []string{"pdf", "xlsx"},
	},
	"travel": {
		stems:      []string{"itinerary", "booking", "reservation", "ticket", "hotel", "flight"},
		extensions: []string{"pdf", "eml"},
	},
	"health": {
		stems:      []string{"medical", "prescription", "insurance", "health_record", "lab_result"},
		extensions: []string{"pdf"},
	},
	"education": {
		stems:      []string{"assignment", "homework", "exam", "quiz", "syllabus", "lecture"},
		extensions: []string{"pdf", "docx", "pptx"},
	},
}

var (
	months    = []string{"january", "february", "march", "april", "may", "june", "july", "august", "september", "october", "november", "december"}
	quarters  = []string{"q1", "q2", "q3", "q4"}
	versions  = []string{"v1", "v2", "v3", "final", "draft", "revised", "updated"}
	companies = []string{"acme", "techcorp", "globex", "initech", "hooli", "pied_piper", "aperture", "umbrella"}
	clients   = []string{"client_a", "client_b", "johnson", "smith", "williams", "brown", "jones"}
	projects  = []string{"alpha", "beta", "gamma", "delta", "project_x", "project_phoenix", "project_atlas"}
	statuses  = []string{"pending", "approved", "rejected", "reviewed", "completed", "in_progress"}
	owners    = []string{"my", "our", "team", "personal"}
)
