package lexicon

import "github.com/okian/diarium/internal/domain/mood"

// Moods holds the trigger phrases of the seven fixed moods, in canonical mood order.
var Moods = Set{ //nolint:gochecknoglobals // read-only lexicon
	{Label: string(mood.Happy), Phrases: []string{
		"happy", "joy", "excited", "great", "wonderful", "amazing", "fantastic",
		"love", "loved", "awesome", "brilliant", "excellent", "thrilled", "delighted",
		"optimistic", "hopeful", "inspired", "confident", "proud", "successful",
		"energetic", "eager", "playful", "thankful", "grateful", "calm", "peaceful",
		"balanced", "refreshing", "simple", "manageable", "settle", "quiet", "content",
		"serene", "tranquil", "at peace", "clear my head", "not overwhelmed",
	}},
	{Label: string(mood.Sad), Phrases: []string{
		"sad", "depressed", "down", "upset", "crying", "tears", "hurt", "pain",
		"lonely", "empty", "hollow", "broken", "miserable", "unhappy", "isolated",
		"abandoned", "vulnerable", "fragile", "grief", "powerless", "guilty",
		"ashamed", "remorseful", "inferior", "embarrassed", "disappointed",
		"lingering", "persists", "same feeling", "for a while",
	}},
	{Label: string(mood.Angry), Phrases: []string{
		"angry", "mad", "furious", "rage", "hate", "annoyed", "frustrated",
		"irritated", "pissed", "livid", "outraged", "betrayed", "resentful",
		"disrespected", "ridiculed", "bitter", "indignant", "violated", "jealous",
		"aggressive", "provoked", "hostile", "infuriated", "withdrawn", "numb",
		"critical", "dismissive", "skeptical",
	}},
	{Label: string(mood.Fearful), Phrases: []string{
		"anxious", "worried", "nervous", "stressed", "panic", "fear", "scared",
		"afraid", "tense", "overwhelmed", "helpless", "frightened", "terrified",
		"insecure", "inferior", "inadequate", "weak", "worthless", "insignificant",
		"rejected", "excluded", "persecuted", "threatened", "exposed",
	}},
	{Label: string(mood.Bad), Phrases: []string{
		"bored", "indifferent", "apathetic", "busy", "pressured", "rushed",
		"stressed", "overwhelmed", "out of control", "tired", "sleepy", "unfocused",
		"exhausted", "drained", "worn out", "listless", "unmotivated",
	}},
	{Label: string(mood.Surprised), Phrases: []string{
		"surprised", "shocked", "startled", "amazed", "astonished", "awe",
		"confused", "bewildered", "perplexed", "disillusioned", "unexpected",
		"taken aback", "caught off guard", "eager", "energetic", "dismayed",
	}},
	{Label: string(mood.Disgusted), Phrases: []string{
		"disgusted", "appalled", "revolted", "nauseated", "horrified", "repelled",
		"hesitant", "judgmental", "embarrassed", "disappointed", "awful",
		"detestable", "disapproving", "sick", "repulsive",
	}},
}

// CoDetector is the smaller multi-label vocabulary merged into neural
// sentiment output.
var CoDetector = Set{ //nolint:gochecknoglobals // read-only lexicon
	{Label: string(mood.Happy), Phrases: []string{
		"happy", "joy", "excited", "great", "wonderful", "amazing", "fantastic",
		"love", "proud", "grateful", "thankful", "blessed", "relieved", "content", "peaceful",
	}},
	{Label: string(mood.Sad), Phrases: []string{
		"sad", "depressed", "down", "upset", "crying", "hurt", "lonely", "empty",
		"broken", "miserable", "disappointed",
	}},
	{Label: string(mood.Angry), Phrases: []string{
		"angry", "mad", "furious", "rage", "hate", "annoyed", "frustrated", "irritated", "pissed",
	}},
	{Label: string(mood.Fearful), Phrases: []string{
		"anxious", "worried", "nervous", "stressed", "panic", "fear", "scared", "afraid", "overwhelmed",
	}},
	{Label: string(mood.Bad), Phrases: []string{
		"tired", "exhausted", "drained", "bored", "unmotivated",
	}},
	{Label: string(mood.Surprised), Phrases: []string{
		"surprised", "shocked", "amazed", "astonished", "confused",
	}},
}

// Temporal focus labels.
const (
	Past    = "past"
	Present = "present"
	Future  = "future"
)

// Temporal holds the tense and time-reference vocabulary.
var Temporal = Set{ //nolint:gochecknoglobals // read-only lexicon
	{Label: Past, Phrases: []string{
		"yesterday", "ago", "was", "were", "had", "did", "went", "came", "saw", "felt",
		"remember", "remembered", "recall", "recalled", "before", "earlier", "previous",
		"last week", "last month", "last year", "used to", "once", "back then", "then",
		"past", "history", "memories", "remembering", "reminiscing", "nostalgia",
		"happened", "occurred", "took place", "finished", "completed", "ended",
		"when i was", "when we were", "back in", "in the past", "previously",
	}},
	{Label: Present, Phrases: []string{
		"now", "today", "currently", "right now", "at the moment", "present", "is",
		"are", "am", "doing", "feeling", "thinking", "going through", "experiencing",
		"living", "happening", "occurs", "takes place", "this week", "this month",
		"this year", "nowadays", "these days", "at present", "in the present",
		"right here", "as we speak", "in this moment",
	}},
	{Label: Future, Phrases: []string{
		"tomorrow", "will", "going to", "plan to", "planning", "hope to", "hoping",
		"expect", "expecting", "soon", "later", "next week", "next month", "next year",
		"future", "upcoming", "coming", "ahead", "forward", "eventually", "someday",
		"one day", "in the future", "going forward", "looking forward", "anticipate",
		"anticipating", "intend", "intending", "aim to", "aiming", "goal", "goals",
		"dream", "dreaming", "wish", "wishing", "want to", "would like to",
	}},
}

// Life-domain category labels.
const (
	Work         = "work"
	School       = "school"
	Relationship = "relationship"
	Family       = "family"
	Self         = "self"
	Society      = "society"
	Goals        = "goals"
	Life         = "life"
)

// Categories holds the life-domain vocabulary.
var Categories = Set{ //nolint:gochecknoglobals // read-only lexicon
	{Label: Work, Phrases: []string{
		"work", "job", "office", "boss", "colleague", "colleagues", "meeting", "meetings",
		"project", "projects", "deadline", "deadlines", "career", "professional",
		"manager", "team", "workplace", "desk", "computer", "laptop", "presentation",
		"presentations", "client", "clients", "business", "company", "employer",
		"employee", "salary", "promotion", "promoted", "interview", "hired", "fired",
		"resign", "resigned", "quit", "quitting", "workload", "tasks", "task",
	}},
	{Label: School, Phrases: []string{
		"school", "university", "college", "class", "classes", "homework", "assignment",
		"assignments", "exam", "exams", "test", "tests", "quiz", "quizzes", "grade",
		"grades", "gpa", "professor", "professors", "teacher", "teachers", "student",
		"students", "study", "studying", "studied", "campus", "lecture", "lectures",
		"semester", "semesters", "course", "courses", "degree", "graduation",
		"graduate", "thesis", "dissertation", "research", "paper", "papers", "essay", "essays",
	}},
	{Label: Relationship, Phrases: []string{
		"boyfriend", "girlfriend", "partner", "spouse", "husband", "wife", "dating",
		"date", "dates", "relationship", "relationships", "love", "loved", "loving",
		"romance", "romantic", "together", "breakup", "broke up", "divorce", "divorced",
		"marriage", "married", "wedding", "engaged", "engagement", "proposal",
		"proposed", "crush", "attracted", "attraction", "flirting", "flirt", "kiss",
		"kissed", "hug", "hugged", "cuddle", "cuddled", "intimate", "intimacy",
	}},
	{Label: Family, Phrases: []string{
		"family", "mom", "mother", "dad", "father", "parent", "parents", "sister",
		"sisters", "brother", "brothers", "sibling", "siblings", "son", "sons",
		"daughter", "daughters", "child", "children", "kid", "kids", "baby", "babies",
		"grandmother", "grandfather", "grandma", "grandpa", "grandparent",
		"grandparents", "aunt", "uncle", "cousin", "cousins", "nephew", "niece",
		"relative", "relatives", "household", "home", "house", "visit", "visited",
		"visiting", "reunion", "gathering",
	}},
	{Label: Self, Phrases: []string{
		"myself", "i feel", "i think", "i am", "i'm", "personal", "personally", "self",
		"self-care", "self-improvement", "self-reflection", "reflection",
		"introspection", "meditation", "meditating", "mindfulness", "mental health",
		"wellbeing", "well-being", "health", "fitness", "exercise", "exercising",
		"workout", "workouts", "diet", "eating", "sleep", "sleeping", "rest",
		"relaxation", "relaxing", "hobby", "hobbies", "interest", "interests",
		"passion", "passions", "identity", "who i am", "my personality",
	}},
	{Label: Society, Phrases: []string{
		"society", "social", "community", "communities", "world", "global", "news",
		"politics", "political", "government", "election", "elections", "vote",
		"voting", "social media", "facebook", "twitter", "instagram", "tiktok",
		"reddit", "culture", "cultural", "tradition", "traditions", "social issues",
		"climate", "environment", "environmental", "economy", "economic", "pandemic",
		"covid", "public", "people", "everyone", "social justice", "equality",
		"inequality", "discrimination", "racism", "sexism", "activism", "activist",
	}},
	{Label: Goals, Phrases: []string{
		"goal", "goals", "objective", "objectives", "target", "targets", "aim", "aims",
		"plan", "plans", "planning", "planned", "aspiration", "aspirations", "dream",
		"dreams", "dreaming", "ambition", "ambitions", "ambitious", "achieve",
		"achievement", "achievements", "accomplish", "accomplishment",
		"accomplishments", "success", "succeed", "succeeding", "milestone",
		"milestones", "progress", "improve", "improving", "improvement", "better",
		"best", "excel", "excellence", "strive", "striving", "work towards",
		"working towards", "reach", "reaching",
	}},
	{Label: Life, Phrases: []string{
		"life", "living", "lifestyle", "daily", "day to day", "routine", "routines",
		"everyday", "normal", "ordinary", "regular", "usual", "typical", "general",
		"existence", "being", "alive", "lived", "experience", "experiences",
		"experiencing", "journey", "journeys", "path", "paths", "way of life",
		"lifespan", "lifetime", "throughout life", "in life", "my life", "our lives",
	}},
}
