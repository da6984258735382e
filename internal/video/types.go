package video

// The platform's JSON uses camelCase keys with its own abbreviations
// (subj, vide, cour, tecl); the field names below keep the service's
// vocabulary so responses stay recognizable against the raw API.

// Subject is one lecture-capture subject (a course offering with videos).
type Subject struct {
	SubjectID     int64  `json:"subjectId"`
	CsplID        int64  `json:"csplId"`
	SubjectName   string `json:"subjectName"`
	ClassroomID   int64  `json:"classroomId"`
	ClassroomName string `json:"classroomName"`
	UserID        int64  `json:"userId"`
	UserName      string `json:"userName"`
	CourTimes     int64  `json:"courTimes"`
	SubjImgURL    string `json:"subjImgUrl"`
	TeclID        int64  `json:"teclId"`
	TeclName      string `json:"teclName"`
	TermTime      int64  `json:"termTime"`
	BeginYear     int64  `json:"beginYear"`
	EndYear       int64  `json:"endYear"`
}

// Course is a subject's video course with its recorded sessions.
type Course struct {
	SubjID         int64   `json:"subjId"`
	SubjName       string  `json:"subjName"`
	CourID         int64   `json:"courId"`
	CourTimes      int64   `json:"courTimes"`
	SubjImgURL     string  `json:"subjImgUrl"`
	TeclID         int64   `json:"teclId"`
	TeclName       string  `json:"teclName"`
	IndexCount     int64   `json:"indexCount"`
	CsplID         int64   `json:"csplId"`
	TetiBeginYear  int64   `json:"tetiBeginYear"`
	TetiEndYear    int64   `json:"tetiEndYear"`
	TetiTerm       int64   `json:"tetiTerm"`
	ResponseVoList []Video `json:"responseVoList"`
}

// Video is one recorded session entry inside a Course listing.
type Video struct {
	ID            int64  `json:"id"`
	VideID        int64  `json:"videId"`
	VideName      string `json:"videName"`
	UserID        int64  `json:"userId"`
	UserName      string `json:"userName"`
	VideSource    int64  `json:"videSource"`
	SubjID        int64  `json:"subjId"`
	CourID        int64  `json:"courId"`
	CourBeginTime int64  `json:"courBeginTime"`
	CourEndTime   int64  `json:"courEndTime"`
	CourTimes     int64  `json:"courTimes"`
	IndexCount    int64  `json:"indexCount"`
	CsplID        int64  `json:"csplId"`
}

// PlayInfo carries the stream locations for one playable video.
type PlayInfo struct {
	ID             int64  `json:"id"`
	Index          int64  `json:"index"`
	Name           string `json:"name"`
	VidePlayTime   int64  `json:"videPlayTime"`
	ClientIPType   int64  `json:"clientIpType"`
	RtmpURLHdv     string `json:"rtmpUrlHdv"`
	CdviChannelNum int64  `json:"cdviChannelNum"`
	CdviViewNum    int64  `json:"cdviViewNum"`
}

// Info is the signed getvideoinfos response for one video.
type Info struct {
	ID                      int64      `json:"id"`
	CourID                  int64      `json:"courId"`
	CourName                string     `json:"courName"`
	CourTimes               int64      `json:"courTimes"`
	VideName                string     `json:"videName"`
	VideSource              int64      `json:"videSource"`
	VideBeginTime           string     `json:"videBeginTime"`
	VideEndTime             string     `json:"videEndTime"`
	VidePlayTime            int64      `json:"videPlayTime"`
	SubjID                  int64      `json:"subjId"`
	SubjName                string     `json:"subjName"`
	TeclID                  int64      `json:"teclId"`
	TeclName                string     `json:"teclName"`
	UserID                  int64      `json:"userId"`
	UserName                string     `json:"userName"`
	OrganizationName        string     `json:"organizationName"`
	ClroName                string     `json:"clroName"`
	RtmpURLHdv              string     `json:"rtmpUrlHdv"`
	VideBeginTimeMs         int64      `json:"videBeginTimeMs"`
	VideEndTimeMs           int64      `json:"videEndTimeMs"`
	VideoPlayResponseVoList []PlayInfo `json:"videoPlayResponseVoList"`
}

// itemPage is the envelope indexed listings arrive in.
type itemPage[T any] struct {
	List []T      `json:"list"`
	Page pageMeta `json:"page"`
}

type pageMeta struct {
	PageIndex int `json:"pageIndex"`
	PageNext  int `json:"pageNext"`
	PageCount int `json:"pageCount"`
	PageSize  int `json:"pageSize"`
	RowCount  int `json:"rowCount"`
}
