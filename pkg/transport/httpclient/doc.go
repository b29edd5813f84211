/*
Package httpclient builds *http.Client instances layered with the decorators of
the [transport] package: default User-Agent, request/response hooks, response
caching, statsd metrics, NewRelic external segments and OpenTelemetry client
spans.

It also provides NewRequest, which builds requests whose bodies can be replayed
from the beginning. The rest package relies on this to re-issue a request with
its original payload after a credentials refresh.
*/
package httpclient
