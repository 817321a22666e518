package interview

// Categories lists the job categories offered when setting up an interview.
var Categories = []string{
	"Software Engineering",
	"Data Science",
	"Product Management",
	"Design",
	"Marketing",
}

var skillsByCategory = map[string][]string{
	"Software Engineering": {"Frontend Development", "Backend Development", "Full Stack", "DevOps"},
	"Data Science":         {"Machine Learning", "Data Analysis", "Data Engineering", "AI Research"},
	"Product Management":   {"Product Strategy", "Growth", "Analytics", "User Research"},
	"Design":               {"UI/UX Design", "Product Design", "Graphic Design", "Design Systems"},
	"Marketing":            {"Digital Marketing", "Content Marketing", "Growth Marketing", "Brand Marketing"},
}

// Languages lists the optional technical focus areas.
var Languages = []string{
	"JavaScript", "Python", "Java", "TypeScript", "React", "Node.js",
	"SQL", "AWS", "Docker", "Kubernetes", "TensorFlow", "PyTorch",
}

// Skills returns the skills offered for category, or nil if it is unknown.
func Skills(category string) []string {
	return skillsByCategory[category]
}
