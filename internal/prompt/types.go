package prompt

var defaultDescriptions = map[string]TypeInfo{
	"feat":     {Description: "A new feature", Emoji: "✨"},
	"fix":      {Description: "A bug fix", Emoji: "🐛"},
	"docs":     {Description: "Documentation only changes", Emoji: "📝"},
	"style":    {Description: "Changes that do not affect the meaning of the code", Emoji: "💄"},
	"refactor": {Description: "A code change that neither fixes a bug nor adds a feature", Emoji: "♻️"},
	"perf":     {Description: "A code change that improves performance", Emoji: "⚡️"},
	"test":     {Description: "Adding missing tests or correcting existing tests", Emoji: "✅"},
	"build":    {Description: "Changes that affect the build system or external dependencies", Emoji: "📦️"},
	"ci":       {Description: "Changes to CI configuration files and scripts", Emoji: "🎡"},
	"chore":    {Description: "Other changes that don't modify src or test files", Emoji: "🔨"},
	"revert":   {Description: "Reverts a previous commit", Emoji: "⏪️"},
}

// DefaultTypes is the conventional-commit type list in display order.
func DefaultTypes() []string {
	return []string{"feat", "fix", "docs", "style", "refactor", "perf", "test", "build", "ci", "chore", "revert"}
}
