package handler

// Result carries the optional pieces of a success response. Format selects
// the envelope shape from which fields are set.
type Result struct {
	Msg         string
	Data        any
	HasData     bool
	Count       *int
	Page        *PageInfo
	AccessToken string
}

// PageInfo is the pagination block of a paginated listing response.
type PageInfo struct {
	Page       int
	PageSize   int
	TotalCount int
}

// Format renders a success envelope. Shape precedence is fixed for client
// compatibility: an explicit count wins over message+data framing, and
// message+token framing wins over plain message+data.
func Format(r Result) map[string]any {
	out := map[string]any{"err": 0}
	switch {
	case r.Count != nil:
		out["count"] = *r.Count
		out["data"] = r.Data
	case r.Page != nil:
		out["data"] = r.Data
		out["page"] = r.Page.Page
		out["pageSize"] = r.Page.PageSize
		out["totalCount"] = r.Page.TotalCount
	case r.AccessToken != "":
		out["msg"] = r.Msg
		out["accessToken"] = r.AccessToken
		if r.HasData {
			out["data"] = r.Data
		}
	case r.Msg != "" && r.HasData:
		out["msg"] = r.Msg
		out["data"] = r.Data
	case r.Msg != "":
		out["msg"] = r.Msg
	default:
		out["data"] = r.Data
	}
	return out
}

// FormatError renders the error envelope.
func FormatError(msg string) map[string]any {
	return map[string]any{"err": 1, "msg": msg}
}
