package conf

type Bootstrap struct {
	Server   *Server
	Data     *Data
	Analyzer *Analyzer
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	SessionTtl string `json:"session_ttl"`
}

type Analyzer struct {
	Gemini *LLM `json:"gemini"`
	Openai *LLM `json:"openai"`
	Log    *Log `json:"log"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	Model   string `json:"model"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
