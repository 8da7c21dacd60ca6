package dto

type TrendingRepo struct {
	ID    string            `json:"id"`
	Title string            `json:"title"`
	URL   string            `json:"url"`
	Extra TrendingRepoExtra `json:"extra"`
}

type TrendingRepoExtra struct {
	Desc      string `json:"desc"`
	Star      string `json:"star"`
	Fork      string `json:"fork"`
	TodayStar string `json:"todayStar"`
	CodeLang  string `json:"codeLang"`
}
