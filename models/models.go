package models

import (
	"errors"
	"time"
)

// ErrInvalidProfileURL is returned when a person lookup reference does not
// look like a LinkedIn profile URL. It short-circuits before any network call.
var ErrInvalidProfileURL = errors.New("invalid linkedin profile url")

// Executive is a name/title pair on a company profile.
type Executive struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Experience is a company/role pair on a person profile.
type Experience struct {
	Company string `json:"company"`
	Role    string `json:"role"`
}

// CompanyProfile is the synthesized research output for a company.
// List fields are always present in JSON, empty when unknown; optional
// scalars are null when unknown.
type CompanyProfile struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Industry      *string `json:"industry"`
	Headquarters  *string `json:"headquarters"`
	Website       *string `json:"website"`
	EmployeeCount *string `json:"employee_count"`
	FoundedYear   *int    `json:"founded_year"`

	// business details
	ProductsServices []string `json:"products_services"`
	TargetMarkets    []string `json:"target_markets"`
	Competitors      []string `json:"competitors"`

	// leadership
	KeyExecutives []Executive `json:"key_executives"`

	// recent activity
	RecentNews    []string `json:"recent_news"`
	RecentFunding *string  `json:"recent_funding"`

	// sales intelligence
	PainPoints    []string `json:"pain_points"`
	Opportunities []string `json:"opportunities"`
	TalkingPoints []string `json:"talking_points"`

	// metadata
	LastUpdated     time.Time `json:"last_updated"`
	ConfidenceScore float64   `json:"confidence_score"`
}

// Normalize fills nil list fields so they marshal as [] instead of null.
func (p *CompanyProfile) Normalize() {
	if p.ProductsServices == nil {
		p.ProductsServices = []string{}
	}
	if p.TargetMarkets == nil {
		p.TargetMarkets = []string{}
	}
	if p.Competitors == nil {
		p.Competitors = []string{}
	}
	if p.KeyExecutives == nil {
		p.KeyExecutives = []Executive{}
	}
	if p.RecentNews == nil {
		p.RecentNews = []string{}
	}
	if p.PainPoints == nil {
		p.PainPoints = []string{}
	}
	if p.Opportunities == nil {
		p.Opportunities = []string{}
	}
	if p.TalkingPoints == nil {
		p.TalkingPoints = []string{}
	}
}

// PersonProfile is the synthesized research output for a person.
type PersonProfile struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	LinkedinURL string  `json:"linkedin_url"`
	Headline    *string `json:"headline"`
	Location    *string `json:"location"`

	// current position
	CurrentCompany   *string  `json:"current_company"`
	CurrentRole      *string  `json:"current_role"`
	RoleDuration     *string  `json:"role_duration"`
	Responsibilities []string `json:"responsibilities"`

	// background
	PreviousCompanies []Experience `json:"previous_companies"`
	Education         []string     `json:"education"`
	TotalExperience   *string      `json:"total_experience"`

	// interests and activity
	PostTopics []string `json:"post_topics"`
	Interests  []string `json:"interests"`
	Skills     []string `json:"skills"`

	// engagement insights
	CommunicationStyle    *string  `json:"communication_style"`
	DecisionMakingFactors []string `json:"decision_making_factors"`
	PotentialNeeds        []string `json:"potential_needs"`

	// sales intelligence
	EngagementTips       []string `json:"engagement_tips"`
	CommonConnections    []string `json:"common_connections"`
	ConversationStarters []string `json:"conversation_starters"`

	// metadata
	LastUpdated         time.Time `json:"last_updated"`
	ProfileCompleteness float64   `json:"profile_completeness"`
}

// Normalize fills nil list fields so they marshal as [] instead of null.
func (p *PersonProfile) Normalize() {
	if p.Responsibilities == nil {
		p.Responsibilities = []string{}
	}
	if p.PreviousCompanies == nil {
		p.PreviousCompanies = []Experience{}
	}
	if p.Education == nil {
		p.Education = []string{}
	}
	if p.PostTopics == nil {
		p.PostTopics = []string{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.DecisionMakingFactors == nil {
		p.DecisionMakingFactors = []string{}
	}
	if p.PotentialNeeds == nil {
		p.PotentialNeeds = []string{}
	}
	if p.EngagementTips == nil {
		p.EngagementTips = []string{}
	}
	if p.CommonConnections == nil {
		p.CommonConnections = []string{}
	}
	if p.ConversationStarters == nil {
		p.ConversationStarters = []string{}
	}
}

// Identity is the structured summary extracted from a LinkedIn profile page.
// It feeds the person research pipeline.
type Identity struct {
	Name                 string   `json:"name"`
	Company              string   `json:"company"`
	Role                 string   `json:"role"`
	Location             string   `json:"location"`
	Bio                  string   `json:"bio"`
	Skills               []string `json:"skills"`
	PreviousCompanies    []string `json:"previous_companies"`
	ConversationStarters []string `json:"conversation_starters"`
	DiscussionTopics     []string `json:"discussion_topics"`

	LinkedinURL string `json:"linkedin_url"`
	Username    string `json:"username"`
}

// NewsArticle is a single entry in a digest.
type NewsArticle struct {
	Title     string   `json:"title"`
	URL       string   `json:"url"`
	Source    string   `json:"source"`
	Published *string  `json:"published"`
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"key_points"`
}

// NewsDigest is the synthesized output of the news pipeline.
type NewsDigest struct {
	ID           string        `json:"id"`
	Topic        string        `json:"topic"`
	Mode         string        `json:"mode"`
	Summary      string        `json:"summary"`
	TopTakeaways []string      `json:"top_takeaways"`
	Articles     []NewsArticle `json:"articles"`
	Citations    []string      `json:"citations"`
	GeneratedAt  time.Time     `json:"generated_at"`
	Confidence   float64       `json:"confidence"`
}

// Normalize fills nil list fields so they marshal as [] instead of null.
func (d *NewsDigest) Normalize() {
	if d.TopTakeaways == nil {
		d.TopTakeaways = []string{}
	}
	if d.Articles == nil {
		d.Articles = []NewsArticle{}
	}
	if d.Citations == nil {
		d.Citations = []string{}
	}
	for i := range d.Articles {
		if d.Articles[i].KeyPoints == nil {
			d.Articles[i].KeyPoints = []string{}
		}
	}
}

// ImageResult is one generated image, inlined as a data URL.
type ImageResult struct {
	DataURL  string `json:"data_url"`
	MimeType string `json:"mime_type"`
}

// ImageResponse wraps generated or edited images with the model that made them.
type ImageResponse struct {
	Model  string        `json:"model"`
	Images []ImageResult `json:"images"`
}
