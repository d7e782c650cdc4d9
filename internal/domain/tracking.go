package domain

import "time"

// WaterIntake is today's water tracker state. One glass is 250ml.
type WaterIntake struct {
	ID         uint    `json:"id"`
	Glasses    int     `json:"glasses"`
	Goal       int     `json:"goal"`
	Date       string  `json:"date"`
	Percentage float64 `json:"percentage"`
	Remaining  int     `json:"remaining"`
}

// Goal types.
const (
	GoalWeight   = "weight"
	GoalExercise = "exercise"
	GoalWater    = "water"
	GoalSleep    = "sleep"
	GoalCustom   = "custom"
)

// Goal is a user-defined health target.
type Goal struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Target      float64 `json:"target"`
	Current     float64 `json:"current"`
	Unit        string  `json:"unit"`
	Deadline    string  `json:"deadline"`
	IsCompleted bool    `json:"is_completed"`
	Progress    float64 `json:"progress"`
	DaysLeft    int     `json:"days_left"`
}

// GoalRequest is the body of POST /goals.
type GoalRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description,omitempty" validate:"max=500"`
	Type        string  `json:"type" validate:"required,oneof=weight exercise water sleep custom"`
	Target      float64 `json:"target" validate:"required,gt=0"`
	Unit        string  `json:"unit,omitempty"`
	Deadline    string  `json:"deadline,omitempty"`
}

// GoalStats is the payload of GET /goals/stats.
type GoalStats struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"in_progress"`
}

// Reminder types.
const (
	ReminderWater      = "water"
	ReminderMeal       = "meal"
	ReminderExercise   = "exercise"
	ReminderMeditation = "meditation"
	ReminderRest       = "rest"
	ReminderCustom     = "custom"
)

// Reminder is a scheduled daily nudge. Templates carry a string ID prefixed
// with "default-" and never reach the backend.
type Reminder struct {
	ID       string `json:"-"`
	RemoteID uint   `json:"id"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Time     string `json:"time"`
	IsActive bool   `json:"is_active"`
	Icon     string `json:"icon,omitempty"`
}

// Template reports whether r is one of the built-in defaults.
func (r Reminder) Template() bool {
	return r.RemoteID == 0
}

// ReminderRequest is the body of POST /reminders and PUT /reminders/{id}.
type ReminderRequest struct {
	Type     string `json:"type,omitempty" validate:"omitempty,oneof=water meal exercise meditation rest custom"`
	Label    string `json:"label,omitempty"`
	Time     string `json:"time,omitempty"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// DefaultReminders returns the templates shown when the user has none saved.
func DefaultReminders() []Reminder {
	return []Reminder{
		{ID: "default-1", Type: ReminderWater, Label: "Minum Air Pagi", Time: "07:00", IsActive: true},
		{ID: "default-2", Type: ReminderMeal, Label: "Sarapan Sehat", Time: "07:30", IsActive: true},
		{ID: "default-3", Type: ReminderExercise, Label: "Olahraga Pagi", Time: "06:00", IsActive: true},
		{ID: "default-4", Type: ReminderMeditation, Label: "Meditasi", Time: "06:30", IsActive: true},
		{ID: "default-5", Type: ReminderWater, Label: "Minum Air Siang", Time: "12:00", IsActive: true},
		{ID: "default-6", Type: ReminderMeal, Label: "Makan Siang", Time: "12:30", IsActive: true},
		{ID: "default-7", Type: ReminderRest, Label: "Istirahat Siang", Time: "13:00", IsActive: true},
		{ID: "default-8", Type: ReminderWater, Label: "Minum Air Sore", Time: "16:00", IsActive: true},
		{ID: "default-9", Type: ReminderMeal, Label: "Makan Malam", Time: "19:00", IsActive: true},
		{ID: "default-10", Type: ReminderRest, Label: "Persiapan Tidur", Time: "21:00", IsActive: true},
	}
}

// FamilyMember is a link between the user and a relative's account.
type FamilyMember struct {
	ID            uint      `json:"id"`
	MemberEmail   string    `json:"member_email"`
	MemberName    string    `json:"member_name"`
	Relationship  string    `json:"relationship"`
	Status        string    `json:"status"`
	CanViewHealth bool      `json:"can_view_health"`
	CreatedAt     time.Time `json:"created_at"`
}

// FamilyInviteRequest is the body of POST /family/invite.
type FamilyInviteRequest struct {
	MemberEmail  string `json:"member_email" form:"member_email" validate:"required,email"`
	Relationship string `json:"relationship" form:"relationship" validate:"required,oneof=parent child spouse sibling other"`
}

// FamilyRequests is the payload of GET /family/requests.
type FamilyRequests struct {
	Received []FamilyMember `json:"received"`
	Sent     []FamilyMember `json:"sent"`
}

// FamilyHealth is the payload of GET /family/{id}/health.
type FamilyHealth struct {
	MemberName     string        `json:"member_name"`
	Relationship   string        `json:"relationship"`
	LatestHealth   *HealthRecord `json:"latest_health"`
	BMICategory    string        `json:"bmi_category"`
	RecentSymptoms []Symptom     `json:"recent_symptoms"`
}

// Article is a health tip.
type Article struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image_url"`
	ReadTime  int       `json:"read_time"`
	CreatedAt time.Time `json:"created_at"`
}

// ArticlePage is the paginated payload of GET /articles/search.
type ArticlePage struct {
	Articles []Article `json:"articles"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	Limit    int       `json:"limit"`
	Pages    int64     `json:"pages"`
}

// Post is a forum post.
type Post struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	UserName      string    `json:"user_name"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	IsLiked       bool      `json:"is_liked"`
	CreatedAt     time.Time `json:"created_at"`
}

// Comment is a reply to a forum post.
type Comment struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PostThread is the payload of GET /forum/posts/{id}.
type PostThread struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
}

// PostRequest is the body of POST /forum/posts.
type PostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// LikeState is the payload of POST /forum/posts/{id}/like.
type LikeState struct {
	IsLiked    bool `json:"is_liked"`
	LikesCount int  `json:"likes_count"`
}

// Recommendation kinds addressable as /recommendations/{type}.
const (
	RecommendFood      = "food"
	RecommendExercise  = "exercise"
	RecommendEmotional = "emotional"
	RecommendDailyMenu = "daily-menu"
)

// Recommendation is the union of the food, exercise and emotional advisories.
type Recommendation struct {
	Category       string   `json:"category,omitempty"`
	EmotionalState string   `json:"emotional_state,omitempty"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Foods          []string `json:"foods,omitempty"`
	Avoid          []string `json:"avoid,omitempty"`
	Exercises      []string `json:"exercises,omitempty"`
	Duration       string   `json:"duration,omitempty"`
	Frequency      string   `json:"frequency,omitempty"`
	Intensity      string   `json:"intensity,omitempty"`
	Activities     []string `json:"activities,omitempty"`
	Tips           []string `json:"tips,omitempty"`
	Reason         string   `json:"reason,omitempty"`
}

// MealPlan is one meal of the daily menu.
type MealPlan struct {
	MealType      string   `json:"meal_type"`
	Title         string   `json:"title"`
	Foods         []string `json:"foods"`
	Calories      string   `json:"calories,omitempty"`
	Description   string   `json:"description"`
	EstimatedCost string   `json:"estimated_cost,omitempty"`
}

// DailyMenu is the payload of GET /recommendations/daily-menu.
type DailyMenu struct {
	Date               string     `json:"date"`
	HealthTip          string     `json:"health_tip"`
	Breakfast          MealPlan   `json:"breakfast"`
	Lunch              MealPlan   `json:"lunch"`
	Dinner             MealPlan   `json:"dinner"`
	Snacks             []MealPlan `json:"snacks"`
	Drinks             []string   `json:"drinks"`
	Fruits             []string   `json:"fruits"`
	TotalCalories      string     `json:"total_calories"`
	TotalEstimatedCost string     `json:"total_estimated_cost,omitempty"`
}
