package tasks

import "fmt"

// NoticeKind distinguishes transient notification styling.
type NoticeKind int

const (
	NoticeSuccess NoticeKind = iota
	NoticeInfo
	NoticeError
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeSuccess:
		return "success"
	case NoticeInfo:
		return "info"
	case NoticeError:
		return "error"
	default:
		return ""
	}
}

// Notice is a transient, user-visible notification. Every network
// outcome in the sync core (transport failure, non-2xx, business
// rejection, malformed body) converges to one of these; none propagate
// as panics and none schedule retries.
type Notice struct {
	Kind    NoticeKind
	Message string
}

func successNotice(format string, args ...any) Notice {
	return Notice{Kind: NoticeSuccess, Message: fmt.Sprintf(format, args...)}
}

func infoNotice(format string, args ...any) Notice {
	return Notice{Kind: NoticeInfo, Message: fmt.Sprintf(format, args...)}
}

func errorNotice(format string, args ...any) Notice {
	return Notice{Kind: NoticeError, Message: fmt.Sprintf(format, args...)}
}
