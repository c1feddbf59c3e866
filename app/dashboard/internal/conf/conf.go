package conf

type Bootstrap struct {
	Server *Server `json:"server"`
	Radar  *Radar  `json:"radar"`
}

type Server struct {
	Http *HTTP `json:"http"`
}

type HTTP struct {
	Addr    string `json:"addr"`
	Timeout string `json:"timeout"`
}

type Radar struct {
	Pipeline    *Pipeline    `json:"pipeline"`
	Llm         *LLM         `json:"llm"`
	Search      *Search      `json:"search"`
	Log         *Log         `json:"log"`
	Concurrency *Concurrency `json:"concurrency"`
	Db          *DB          `json:"db"`
}

type Pipeline struct {
	NumResults   int32    `json:"num_results"`
	MaxMonthsOld int32    `json:"max_months_old"`
	OutputDir    string   `json:"output_dir"`
	Blacklist    []string `json:"blacklist"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
	Timeout int32  `json:"timeout"`
}

type Search struct {
	Provider string   `json:"provider"`
	Topic    string   `json:"topic"`
	Serper   *Serper  `json:"serper"`
	Serpapi  *SerpAPI `json:"serpapi"`
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type Serper struct {
	ApiKey   string `json:"api_key"`
	Endpoint string `json:"endpoint"`
}

type SerpAPI struct {
	ApiKey string `json:"api_key"`
}

type Tavily struct {
	ApiKey   string `json:"api_key"`
	Endpoint string `json:"endpoint"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}

type Concurrency struct {
	Qps int32 `json:"qps"`
	Rpm int32 `json:"rpm"`
}

type DB struct {
	Host     string `json:"host"`
	Port     int32  `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
