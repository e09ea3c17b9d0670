package scraper

import "time"

// Review: одна запись отзыва. Отсутствующие поля остаются nil.
type Review struct {
	ID               *string    `json:"id"`
	Name             *string    `json:"name"`
	ProfileURL       *string    `json:"profile_url"`
	Rating           *float64   `json:"rating"`
	Text             *string    `json:"text"`
	TranslationText  *string    `json:"translation_text"`
	Reply            *string    `json:"reply"`
	TranslationReply *string    `json:"translation_reply"`
	ProfileImg       *string    `json:"profile_img"`
	CreatedAt        *time.Time `json:"created_at"`
}

// Ruleset собирает все структурные селекторы разметки страницы отзывов.
// При смене вёрстки меняется только эта таблица.
type Ruleset struct {
	ReviewBlock        string `yaml:"review_block"`
	DecorativeNode     string `yaml:"decorative_node"`
	ExpandableText     string `yaml:"expandable_text"`
	ReplyBlock         string `yaml:"reply_block"`
	ReplyCandidate     string `yaml:"reply_candidate"`
	ReplyMinCandidates int    `yaml:"reply_min_candidates"`
	ReplyText          string `yaml:"reply_text"`
	ReviewerAnchor     string `yaml:"reviewer_anchor"`
	ProfileAnchor      string `yaml:"profile_anchor"`
	Avatar             string `yaml:"avatar"`
	RatingNode         string `yaml:"rating_node"`
	RatingLabelAttr    string `yaml:"rating_label_attr"`
	RatingPattern      string `yaml:"rating_pattern"`
	DateNode           string `yaml:"date_node"`
	ContributorPattern string `yaml:"contributor_pattern"`
	TokenBlock         string `yaml:"token_block"`
	TokenAttr          string `yaml:"token_attr"`
	TokenParam         string `yaml:"token_param"`
	CountNode          string `yaml:"count_node"`
	OverallRating      string `yaml:"overall_rating"`
}

func DefaultRuleset() Ruleset {
	return Ruleset{
		ReviewBlock:        "div.jxjCjc",
		DecorativeNode:     "div.k8MTF",
		ExpandableText:     `span[jscontroller="MZnM8e"] span[data-expandable-section]`,
		ReplyBlock:         `div[jscontroller="fIQYlf"]`,
		ReplyCandidate:     `[jscontroller="MZnM8e"]`,
		ReplyMinCandidates: 4,
		ReplyText:          ".d6SCIc",
		ReviewerAnchor:     ".TSUbDb a",
		ProfileAnchor:      "div.TSUbDb a",
		Avatar:             "img.lDY1rd",
		RatingNode:         ".lTi8oc.z3HNkc",
		RatingLabelAttr:    "aria-label",
		RatingPattern:      `\d+,\d+`,
		DateNode:           ".dehysf.lTi8oc",
		ContributorPattern: `/maps/contrib/(\d+)`,
		TokenBlock:         "div.gws-localreviews__general-reviews-block",
		TokenAttr:          "data-next-page-token",
		TokenParam:         "next_page_token:",
		CountNode:          ".z5jxId",
		OverallRating:      "span.Aq14fc",
	}
}

// WithDefaults заполняет пустые поля значениями по умолчанию
func (r Ruleset) WithDefaults() Ruleset {
	d := DefaultRuleset()
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&r.ReviewBlock, d.ReviewBlock)
	fill(&r.DecorativeNode, d.DecorativeNode)
	fill(&r.ExpandableText, d.ExpandableText)
	fill(&r.ReplyBlock, d.ReplyBlock)
	fill(&r.ReplyCandidate, d.ReplyCandidate)
	fill(&r.ReplyText, d.ReplyText)
	fill(&r.ReviewerAnchor, d.ReviewerAnchor)
	fill(&r.ProfileAnchor, d.ProfileAnchor)
	fill(&r.Avatar, d.Avatar)
	fill(&r.RatingNode, d.RatingNode)
	fill(&r.RatingLabelAttr, d.RatingLabelAttr)
	fill(&r.RatingPattern, d.RatingPattern)
	fill(&r.DateNode, d.DateNode)
	fill(&r.ContributorPattern, d.ContributorPattern)
	fill(&r.TokenBlock, d.TokenBlock)
	fill(&r.TokenAttr, d.TokenAttr)
	fill(&r.TokenParam, d.TokenParam)
	fill(&r.CountNode, d.CountNode)
	fill(&r.OverallRating, d.OverallRating)
	if r.ReplyMinCandidates <= 0 {
		r.ReplyMinCandidates = d.ReplyMinCandidates
	}
	return r
}
