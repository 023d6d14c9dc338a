package catalog

type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Level       string `json:"level"`
	Area        string `json:"area"`
	Description string `json:"description"`
}

type Process struct {
	ID          int    `json:"id"`
	CategoryID  int    `json:"categoryId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type Question struct {
	ID          int     `json:"id"`
	CategoryID  int     `json:"categoryId"`
	ProcessID   int     `json:"processId,omitempty"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Order       int     `json:"order"`
}

type Employee struct {
	ID               string `json:"id"`
	AccessLevel      string `json:"accessLevel"`
	Name             string `json:"name"`
	ImmediateManager string `json:"immediateManager"`
	Area             string `json:"area"`
	TeamName         string `json:"teamName,omitempty"`
}
