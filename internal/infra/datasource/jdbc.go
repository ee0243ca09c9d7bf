package datasource

import (
	"net/url"
	"strings"
)

// jdbcRenamed maps pgjdbc connection properties to their libpq names.
var jdbcRenamed = map[string]string{
	"currentSchema":   "search_path",
	"ApplicationName": "application_name",
	"connectTimeout":  "connect_timeout",
}

// jdbcOnly lists pgjdbc properties with no libpq counterpart. pgx would
// send them to the server as runtime parameters, which PostgreSQL rejects.
var jdbcOnly = map[string]bool{
	"ssl":                           true,
	"sslfactory":                    true,
	"sslhostnameverifier":           true,
	"sslpasswordcallback":           true,
	"loginTimeout":                  true,
	"socketTimeout":                 true,
	"cancelSignalTimeout":           true,
	"tcpKeepAlive":                  true,
	"prepareThreshold":              true,
	"preparedStatementCacheQueries": true,
	"reWriteBatchedInserts":         true,
	"defaultRowFetchSize":           true,
	"stringtype":                    true,
	"preferQueryMode":               true,
	"loggerLevel":                   true,
	"loggerFile":                    true,
	"targetServerType":              true,
	"loadBalanceHosts":              true,
	"readOnly":                      true,
	"autosave":                      true,
}

// jdbcToPgx rewrites the query of a JDBC-style postgresql:// URL (driver
// prefix already removed) into parameters pgx understands: ssl=true|false
// becomes sslmode=require|disable unless sslmode is given, pgjdbc names are
// mapped to libpq names and JDBC-only keys are dropped. An explicit libpq
// key wins over its pgjdbc alias. Unknown keys and everything before the
// query are left untouched.
func jdbcToPgx(dsn string) string {
	base, query, ok := strings.Cut(dsn, "?")
	if !ok || query == "" {
		return dsn
	}

	values, err := url.ParseQuery(query)
	if err != nil {
		return dsn
	}

	out := url.Values{}
	for key, vals := range values {
		if jdbcOnly[key] || jdbcRenamed[key] != "" {
			continue
		}
		out[key] = vals
	}
	for alias, key := range jdbcRenamed {
		if vals, ok := values[alias]; ok && !out.Has(key) {
			out[key] = vals
		}
	}

	if !out.Has("sslmode") {
		switch strings.ToLower(values.Get("ssl")) {
		case "true":
			out.Set("sslmode", "require")
		case "false":
			out.Set("sslmode", "disable")
		}
	}

	if len(out) == 0 {
		return base
	}
	return base + "?" + out.Encode()
}
