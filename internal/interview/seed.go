package interview

// commonQuestions open every interview regardless of category.
var commonQuestions = []Question{
	{ID: "q1", Text: "Tell me about your background and experience in this field.", Category: "general"},
	{ID: "q2", Text: "What do you consider your biggest professional achievement?", Category: "achievements"},
	{ID: "q3", Text: "How do you handle challenging situations or conflicts in the workplace?", Category: "soft_skills"},
}

// categoryQuestions follow the common questions for known categories.
var categoryQuestions = map[string][]Question{
	"Software Engineering": {
		{ID: "se1", Text: "Describe a complex technical challenge you've faced and how you solved it.", Category: "technical"},
		{ID: "se2", Text: "How do you stay updated with the latest technologies and programming practices?", Category: "learning"},
	},
	"Data Science": {
		{ID: "ds1", Text: "Explain a data project where you derived actionable insights that impacted business decisions.", Category: "technical"},
		{ID: "ds2", Text: "How do you ensure the statistical validity of your models?", Category: "methodology"},
	},
	"Product Management": {
		{ID: "pm1", Text: "How do you prioritize features in your product roadmap?", Category: "strategy"},
		{ID: "pm2", Text: "Tell me about a time when you had to make a difficult product decision based on user feedback.", Category: "decision_making"},
	},
}

// skillBank holds technical questions drawn at random by GenerateQuestions.
var skillBank = map[string]map[string][]string{
	"Software Engineering": {
		"Frontend Development": {
			"Explain the virtual DOM and its benefits in React",
			"What are React hooks and how do they improve component logic?",
			"Describe the difference between controlled and uncontrolled components",
			"How do you handle state management in large React applications?",
		},
		"Backend Development": {
			"Explain RESTful API design principles",
			"How do you handle database transactions?",
			"Describe microservices architecture and its benefits",
			"How do you implement authentication and authorization?",
		},
	},
	"Data Science": {
		"Machine Learning": {
			"Explain the difference between supervised and unsupervised learning",
			"How do you handle overfitting in machine learning models?",
			"Describe the process of feature selection",
			"What evaluation metrics do you use for classification problems?",
		},
	},
}

// seedQuestions returns a fresh copy of the opening list for category.
func seedQuestions(category string) []Question {
	extra := categoryQuestions[category]
	out := make([]Question, 0, len(commonQuestions)+len(extra))
	out = append(out, commonQuestions...)
	out = append(out, extra...)
	return out
}

// bankQuestions returns a copy of the skill bank entries for category/skill.
func bankQuestions(category, skill string) []string {
	src := skillBank[category][skill]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
