package pairing

// typeAParams is the literal Type-A pairing parameter block. It must match
// bit-for-bit across every participant of the scheme; re-deriving or
// altering it breaks interoperability. Taken verbatim from the reference
// implementation this scheme was ported from.
const typeAParams = `type a
q 8780710799663312522437781984754049815806883199414208211028653399266475630880222957078625179422662221423155858769582317459277713367317481324925129998224791
h 12016012264891146079388821366740534204802954401251311822919615131047207289359704531102844802183906537786776
r 730750818665451621361119245571504901405976559617
exp2 159
exp1 107
sign1 1
sign0 1
`
