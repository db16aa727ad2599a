package protocol

import "strconv"

// Response is a server wire message, terminator excluded.
type Response string

const (
	RespMove        Response = "102 MOVE"
	RespTurnLeft    Response = "103 TURN LEFT"
	RespTurnRight   Response = "104 TURN RIGHT"
	RespGetMessage  Response = "105 GET MESSAGE"
	RespLogout      Response = "106 LOGOUT"
	RespOK          Response = "200 OK"
	RespLoginFailed Response = "300 LOGIN FAILED"
	RespSyntaxError Response = "301 SYNTAX ERROR"
	RespLogicError  Response = "302 LOGIC ERROR"
)

// AcceptCode renders the server confirmation code as its decimal wire form.
func AcceptCode(code uint16) Response {
	return Response(strconv.FormatUint(uint64(code), 10))
}
