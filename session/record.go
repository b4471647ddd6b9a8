package session

// Record is one active session on the remote server. Records are immutable
// once received; a refresh replaces the whole page.
type Record struct {
	ID             string `json:"id"`
	UserName       string `json:"userName"`
	MachineName    string `json:"machineName"`
	ThreadID       int32  `json:"threadID"`
	Server         string `json:"server"`
	Function       string `json:"function"`
	Environment    string `json:"environment"`
	DateTime       string `json:"dateTime"`
	TimeUp         string `json:"timeUp"`
	Instructions   int64  `json:"instructions"`
	InstructionsPS int32  `json:"instructionsPS"`
	Comments       string `json:"comments"`
	Memory         int32  `json:"memory"`
	SID            string `json:"sID"`
	CtreeID        int32  `json:"idCTREE"`
	ThreadType     string `json:"threadType"`
	InactiveTime   string `json:"inactiveTime"`
}

// Title is the short label used when a single session is addressed.
func (r Record) Title() string {
	if r.UserName == "" {
		return r.ID
	}
	return r.UserName
}
