package types

const ContextUserKey = "user"

const TokenCookieName = "token"
